// This file is a simplified set of structs for reading TMX / TSX files
// (doc.mapeditor.org/en/stable/reference/tmx-map-format/) into our MapConfig
// and TilesetConfig.
//
// Much of this code was lifted from github.com/bcvery1/tilepix including
// the decode functions (all credit to authors).
//
// We only need a small part of the feature set of TMX in order to do what we want
// so we only bother to parse those things.
// - tilesets must be external (have a source)
// - layer data is CSV or base64 (optionally zlib / gzip compressed)
// - flip flags on tile ids are dropped

package tilekit

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"
)

// GID flag bits (same convention as Tiled TMX format).
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

// tmxMap is a TMX file structure representing the map as a whole.
type tmxMap struct {
	XMLName     xml.Name    `xml:"map"`
	Orientation string      `xml:"orientation,attr"` // we only support "orthogonal"
	Width       int         `xml:"width,attr"`       // in tiles
	Height      int         `xml:"height,attr"`      // in tiles
	TileWidth   int         `xml:"tilewidth,attr"`   // in pixels
	TileHeight  int         `xml:"tileheight,attr"`  // in pixels
	Properties  []*Property `xml:"properties>property"`
	Tilesets    []*Tileref  `xml:"tileset"`
	Layers      []*tmxLayer `xml:",any"` // layers & groups, in document order
}

// Tileref is a TMX map's reference to an external tileset
type Tileref struct {
	FirstGID int    `xml:"firstgid,attr"`
	Source   string `xml:"source,attr"`
}

// tmxLayer is any child element of a map or group. We figure out what kind
// of layer it is by it's element name.
type tmxLayer struct {
	XMLName xml.Name
	Name    string      `xml:"name,attr"`
	Width   int         `xml:"width,attr"`
	Height  int         `xml:"height,attr"`
	Data    *Data       `xml:"data"`
	Layers  []*tmxLayer `xml:",any"` // children of a group
}

// tsxTileset is a TMX file structure which represents a Tiled Tileset
type tsxTileset struct {
	XMLName    xml.Name    `xml:"tileset"`
	Name       string      `xml:"name,attr"`
	TileWidth  int         `xml:"tilewidth,attr"`
	TileHeight int         `xml:"tileheight,attr"`
	Properties []*Property `xml:"properties>property"`
	Tiles      []*tsxTile  `xml:"tile"`
	Image      *Image      `xml:"image"`
}

// Property is a TMX file structure which holds a Tiled property.
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"` // string (default), int, bool + other (we don't use)
}

// Image is an image file in TMX
type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// tsxTile carries the properties of one tile of a tileset
type tsxTile struct {
	ID         int         `xml:"id,attr"`
	Properties []*Property `xml:"properties>property"`
}

// Data is a TMX file structure holding data.
type Data struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr"`
	RawData     []byte `xml:",innerxml"`
}

// layerType maps a TMX element name to our layer type.
// Returns false for elements that are not layers at all.
func layerType(element string) (string, bool) {
	switch element {
	case "layer":
		return LayerTile, true
	case "group":
		return LayerGroup, true
	case "properties", "editorsettings", "tileset":
		return "", false
	}
	// objectgroup, imagelayer & friends are passed through so the
	// map builder can reject them
	return element, true
}

// DecodeTMX reads a TMX map into a MapConfig.
func DecodeTMX(r io.Reader) (*MapConfig, error) {
	m := &tmxMap{}
	if err := xml.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("%w: tmx: %v", ErrDecode, err)
	}

	if m.Orientation != "" && m.Orientation != "orthogonal" {
		return nil, fmt.Errorf("%w: tmx: unsupported orientation %s", ErrDecode, m.Orientation)
	}

	cfg := &MapConfig{
		Width:      m.Width,
		Height:     m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Tilesets:   []TilesetRef{},
		Layers:     []LayerConfig{},
	}

	name, ok := newPropertiesFromList(m.Properties).String(KeyName)
	if ok {
		cfg.Name = name
	}

	for _, ts := range m.Tilesets {
		if ts.Source == "" {
			return nil, fmt.Errorf("%w: tmx: embedded tilesets are not supported", ErrDecode)
		}
		cfg.Tilesets = append(cfg.Tilesets, TilesetRef{FirstGID: ts.FirstGID, Source: ts.Source})
	}

	layers, err := convertLayers(m.Layers)
	if err != nil {
		return nil, err
	}
	cfg.Layers = layers

	return cfg, cfg.validate()
}

// convertLayers turns TMX layer elements (recursively) into LayerConfigs
func convertLayers(in []*tmxLayer) ([]LayerConfig, error) {
	out := []LayerConfig{}
	for _, l := range in {
		kind, ok := layerType(l.XMLName.Local)
		if !ok {
			continue
		}

		lc := LayerConfig{Type: kind, Name: l.Name, Width: l.Width, Height: l.Height}
		switch kind {
		case LayerTile:
			if l.Data == nil {
				return nil, fmt.Errorf("%w: tmx: layer %s has no data", ErrDecode, l.Name)
			}
			data, err := l.Data.decode()
			if err != nil {
				return nil, fmt.Errorf("%w: tmx: layer %s: %v", ErrDecode, l.Name, err)
			}
			lc.Data = data
		case LayerGroup:
			children, err := convertLayers(l.Layers)
			if err != nil {
				return nil, err
			}
			lc.Layers = children
		}

		out = append(out, lc)
	}
	return out, nil
}

// DecodeTSX reads a TSX tileset into a TilesetConfig.
func DecodeTSX(r io.Reader) (*TilesetConfig, error) {
	ts := &tsxTileset{}
	if err := xml.NewDecoder(r).Decode(ts); err != nil {
		return nil, fmt.Errorf("%w: tsx: %v", ErrDecode, err)
	}

	cfg := &TilesetConfig{
		Name:           ts.Name,
		TileWidth:      ts.TileWidth,
		TileHeight:     ts.TileHeight,
		TileProperties: map[string]map[string]interface{}{},
	}
	if ts.Image != nil {
		cfg.Image = ts.Image.Source
	}

	for _, t := range ts.Tiles {
		props := newPropertiesFromList(t.Properties)
		if props.Len() == 0 {
			continue
		}
		cfg.TileProperties[strconv.Itoa(t.ID)] = props.toMap()
	}

	return cfg, cfg.validate()
}

// decode turns layer data into tile ids, whatever the encoding
func (d *Data) decode() ([]int, error) {
	var gids []uint32
	var err error

	switch d.Encoding {
	case "csv":
		gids, err = d.decodeCSV()
	case "base64":
		gids, err = d.decodeBase64()
	default:
		err = fmt.Errorf("unsupported encoding %q", d.Encoding)
	}
	if err != nil {
		return nil, err
	}

	out := make([]int, len(gids))
	for i, gid := range gids {
		out[i] = int(gid &^ tileFlagMask)
	}
	return out, nil
}

// decodeCSV reads csv encoded tile data
func (d *Data) decodeCSV() ([]uint32, error) {
	cleaner := func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}

	rawDataClean := strings.Map(cleaner, string(d.RawData))

	str := strings.Split(string(rawDataClean), ",")

	gids := make([]uint32, len(str))
	for i, s := range str {
		d, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, err
		}
		gids[i] = uint32(d)
	}
	return gids, nil
}

// decodeBase64 reads base64 encoded (little endian uint32) tile data,
// decompressing first if needed
func (d *Data) decodeBase64() ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(d.RawData)))
	if err != nil {
		return nil, err
	}

	var rd io.Reader
	switch d.Compression {
	case "":
		rd = bytes.NewReader(raw)
	case "zlib":
		rd, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		rd, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		err = fmt.Errorf("unsupported compression %q", d.Compression)
	}
	if err != nil {
		return nil, err
	}

	plain, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	if len(plain)%4 != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of 4", len(plain))
	}

	gids := make([]uint32, len(plain)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(plain[i*4:])
	}
	return gids, nil
}
