package tilekit

import (
	"fmt"
	"image"
	"strconv"
)

// Tile is a single cell sized slice of a tileset image along with it's
// metadata. Tiles are created once when their tileset is decoded & never
// change after that.
type Tile struct {
	// index of the tile within it's tileset (row-major, from 0)
	ID int

	Image image.Image

	// Block marks the tile as impassable
	Block bool

	// Visible tiles are drawn, invisible ones only contribute metadata
	// (blocks, player start)
	Visible bool

	// Name tags special tiles (eg. PlayerStart)
	Name string
}

// Tileset is a decoded sheet of tiles that share one source image and
// tile size.
type Tileset struct {
	Name string

	// where the tileset definition was read from
	Path string

	Image image.Image

	// in pixels
	TileWidth  int
	TileHeight int

	Tiles []*Tile
}

// NewTileset slices `img` into tiles of the size set in `cfg`.
// The image is cut row-major; rows = height / tileheight, cols = width /
// tilewidth & any remainder pixels are discarded. Tile properties from
// `cfg` are merged per key over the defaults (block=false, visible=true,
// name=NoName).
func NewTileset(cfg *TilesetConfig, img image.Image, path string) (*Tileset, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() < cfg.TileWidth || b.Dy() < cfg.TileHeight {
		return nil, fmt.Errorf(
			"%w: tileset %s: image %dx%d smaller than one %dx%d tile",
			ErrDecode, cfg.Name, b.Dx(), b.Dy(), cfg.TileWidth, cfg.TileHeight,
		)
	}

	ts := &Tileset{
		Name:       cfg.Name,
		Path:       path,
		Image:      img,
		TileWidth:  cfg.TileWidth,
		TileHeight: cfg.TileHeight,
	}

	images := slice(img, cfg.TileWidth, cfg.TileHeight)
	ts.Tiles = make([]*Tile, len(images))
	for i, im := range images {
		props, err := cfg.properties(i)
		if err != nil {
			return nil, err
		}
		ts.Tiles[i] = newTile(i, im, tileDefaults().Merge(props))
	}

	return ts, nil
}

// newTile builds a tile from it's merged properties.
// Values of the wrong type are ignored, except numeric names which are
// kept as their decimal string.
func newTile(id int, im image.Image, props *Properties) *Tile {
	t := &Tile{ID: id, Image: im, Visible: true, Name: DefaultTileName}
	if v, ok := props.Bool(KeyBlock); ok {
		t.Block = v
	}
	if v, ok := props.Bool(KeyVisible); ok {
		t.Visible = v
	}
	if v, ok := props.String(KeyName); ok {
		t.Name = v
	} else if v, ok := props.Int(KeyName); ok {
		t.Name = strconv.Itoa(v)
	}
	return t
}

// Len returns the number of tiles in the set
func (t *Tileset) Len() int {
	return len(t.Tiles)
}

// TileAt returns the tile at the given sheet position
func (t *Tileset) TileAt(i int) (*Tile, error) {
	if i < 0 || i >= len(t.Tiles) {
		return nil, fmt.Errorf("%w: tileset %s has no tile %d (%d tiles)", ErrIndex, t.Name, i, len(t.Tiles))
	}
	return t.Tiles[i], nil
}
