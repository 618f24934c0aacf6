// This file holds the JSON asset shapes (as exported by Tiled, plus our
// entity files) and their decoders.

package tilekit

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

const (
	// Layer types
	LayerTile  = "tilelayer"
	LayerGroup = "group"
)

// MapConfig is the decoded grid metadata of a map.
type MapConfig struct {
	Name       string        `json:"name"`
	Width      int           `json:"width"`      // in tiles
	Height     int           `json:"height"`     // in tiles
	TileWidth  int           `json:"tilewidth"`  // in pixels
	TileHeight int           `json:"tileheight"` // in pixels
	Tilesets   []TilesetRef  `json:"tilesets"`
	Layers     []LayerConfig `json:"layers"`
}

// TilesetRef points a map at an external tileset file.
type TilesetRef struct {
	FirstGID int    `json:"firstgid,omitempty"`
	Source   string `json:"source"`
}

// LayerConfig is a single map layer. Data is only set on tile layers,
// Layers only on groups.
type LayerConfig struct {
	Type   string        `json:"type"`
	Name   string        `json:"name"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Data   []int         `json:"data,omitempty"`
	Layers []LayerConfig `json:"layers,omitempty"`
}

// TilesetConfig is a decoded tileset definition.
type TilesetConfig struct {
	Name       string `json:"name"`
	Filepath   string `json:"filepath,omitempty"`
	Image      string `json:"image"`
	TileWidth  int    `json:"tilewidth"`
	TileHeight int    `json:"tileheight"`

	// per tile properties keyed by the tile index (as a string)
	TileProperties map[string]map[string]interface{} `json:"tileproperties,omitempty"`

	// newer Tiled versions write properties per tile instead
	Tiles []tilesetTile `json:"tiles,omitempty"`
}

type tilesetTile struct {
	ID         int            `json:"id"`
	Properties []jsonProperty `json:"properties"`
}

type jsonProperty struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// properties returns the decoded properties of tile `index`, or nil if
// the tileset sets none.
func (c *TilesetConfig) properties(index int) (*Properties, error) {
	var found *Properties

	raw, ok := c.TileProperties[strconv.Itoa(index)]
	if ok {
		p, err := newPropertiesFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: tileset %s tile %d: %v", ErrDecode, c.Name, index, err)
		}
		found = p
	}

	for _, t := range c.Tiles {
		if t.ID != index {
			continue
		}
		raw := map[string]interface{}{}
		for _, prop := range t.Properties {
			raw[prop.Name] = prop.Value
		}
		p, err := newPropertiesFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: tileset %s tile %d: %v", ErrDecode, c.Name, index, err)
		}
		if found == nil {
			found = NewProperties()
		}
		found.Merge(p)
	}

	return found, nil
}

// EntityConfig is a decoded entity definition.
type EntityConfig struct {
	Name           string `json:"name"`
	Filepath       string `json:"filepath,omitempty"`
	Image          string `json:"image"`
	Avatar         string `json:"avatar,omitempty"`
	FrameSize      [2]int `json:"framesize"`
	AnimationSpeed int    `json:"animationspeed"`
	Speed          int    `json:"speed"`
	CollisionBox   [4]int `json:"collisionbox"`
	DevMode        bool   `json:"dev_mode"`

	// animation name => [first, last] frame (inclusive)
	Animations map[string][2]int `json:"animations,omitempty"`
}

// DecodeMapJSON reads a JSON map
func DecodeMapJSON(r io.Reader) (*MapConfig, error) {
	cfg := &MapConfig{}
	err := json.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: map: %v", ErrDecode, err)
	}
	return cfg, cfg.validate()
}

func (c *MapConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: map %s: invalid size %dx%d", ErrDecode, c.Name, c.Width, c.Height)
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("%w: map %s: invalid tile size %dx%d", ErrDecode, c.Name, c.TileWidth, c.TileHeight)
	}
	for _, ts := range c.Tilesets {
		if ts.Source == "" {
			return fmt.Errorf("%w: map %s: tileset without source", ErrDecode, c.Name)
		}
	}
	return nil
}

// DecodeTilesetJSON reads a JSON tileset
func DecodeTilesetJSON(r io.Reader) (*TilesetConfig, error) {
	cfg := &TilesetConfig{}
	err := json.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: tileset: %v", ErrDecode, err)
	}
	return cfg, cfg.validate()
}

func (c *TilesetConfig) validate() error {
	if c.Image == "" {
		return fmt.Errorf("%w: tileset %s: no image", ErrDecode, c.Name)
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("%w: tileset %s: invalid tile size %dx%d", ErrDecode, c.Name, c.TileWidth, c.TileHeight)
	}
	return nil
}

// DecodeEntityJSON reads a JSON entity
func DecodeEntityJSON(r io.Reader) (*EntityConfig, error) {
	cfg := &EntityConfig{}
	err := json.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: entity: %v", ErrDecode, err)
	}
	return cfg, cfg.validate()
}

func (c *EntityConfig) validate() error {
	if c.Image == "" {
		return fmt.Errorf("%w: entity %s: no image", ErrDecode, c.Name)
	}
	if c.FrameSize[0] <= 0 || c.FrameSize[1] <= 0 {
		return fmt.Errorf("%w: entity %s: invalid frame size %v", ErrDecode, c.Name, c.FrameSize)
	}
	if c.Speed < 0 || c.AnimationSpeed < 0 {
		return fmt.Errorf("%w: entity %s: negative speed", ErrDecode, c.Name)
	}
	if c.CollisionBox[2] < 0 || c.CollisionBox[3] < 0 {
		return fmt.Errorf("%w: entity %s: invalid collision box %v", ErrDecode, c.Name, c.CollisionBox)
	}
	return nil
}

// EncodeJSON writes any of our configs as indented JSON
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
