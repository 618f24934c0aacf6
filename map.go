// This file builds maps: resolving tilesets, rendering layers & collecting the
// rectangles entities collide with.

package tilekit

import (
	"fmt"
	"image"
	"image/draw"
	"path"
	"strings"
)

// Map is a fully built map. Maps are built once at load time & are not
// altered after; to reload build a new Map.
type Map struct {
	Name string

	// in pixels
	Width  int
	Height int

	// in pixels
	TileWidth  int
	TileHeight int

	// tilesets by name
	Tilesets map[string]*Tileset

	// all tiles of all tilesets, in tileset declaration order.
	// Cell value N (N > 0) refers to Tiles[N-1].
	Tiles []*Tile

	// rendered tile layers by name
	Layers map[string]*Layer

	// Blocks are the placed rects of every blocking tile, on any layer
	Blocks []image.Rectangle

	// Space indexes Blocks by tile sized cells for movement
	Space *BlockSpace

	// PlayerStart is the placed rect of the (last) PlayerStart tile, or nil
	PlayerStart *image.Rectangle

	order []*Layer
}

// Ordered returns tile layers in their declared order, which is the
// order they should be drawn in.
func (m *Map) Ordered() []*Layer {
	out := make([]*Layer, len(m.order))
	copy(out, m.order)
	return out
}

// Layer returns the layer with the given name
func (m *Map) Layer(name string) (*Layer, error) {
	l, ok := m.Layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: map %s has no layer %q", ErrLookup, m.Name, name)
	}
	return l, nil
}

// Bounds of the map in pixels
func (m *Map) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// TileAt returns the tile referred to by a (1-based) cell value.
// Cell value 0 (the empty cell) returns nil, nil.
func (m *Map) TileAt(cell int) (*Tile, error) {
	if cell == 0 {
		return nil, nil
	}
	if cell < 0 || cell > len(m.Tiles) {
		return nil, fmt.Errorf("%w: map %s has no tile %d (%d tiles)", ErrIndex, m.Name, cell, len(m.Tiles))
	}
	return m.Tiles[cell-1], nil
}

// TilesetPath turns a map's tileset source into the path of the tileset
// definition we load: the source's parent directory name plus it's file
// name with a .json extension.
//
//	"../tilesets/grass.tsx" => "tilesets/grass.json"
func TilesetPath(source string) string {
	source = strings.ReplaceAll(source, "\\", "/")
	dir := path.Base(path.Dir(source))
	file := path.Base(source)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if dir == "." || dir == "/" || dir == ".." {
		return stem + ".json"
	}
	return path.Join(dir, stem+".json")
}

// TilesetResolver turns a tileset reference into a decoded tileset
type TilesetResolver func(ref TilesetRef) (*Tileset, error)

// BuildMap assembles a map from it's config. Each tileset is resolved (in
// order) then every tile layer is rendered.
//
// Any failure aborts the whole build; there are no partial maps.
func BuildMap(cfg *MapConfig, resolve TilesetResolver) (*Map, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Map{
		Name:       cfg.Name,
		Width:      cfg.Width * cfg.TileWidth,
		Height:     cfg.Height * cfg.TileHeight,
		TileWidth:  cfg.TileWidth,
		TileHeight: cfg.TileHeight,
		Tilesets:   map[string]*Tileset{},
		Tiles:      []*Tile{},
		Layers:     map[string]*Layer{},
		Blocks:     []image.Rectangle{},
		order:      []*Layer{},
	}

	for _, ref := range cfg.Tilesets {
		ts, err := resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: map %s: tileset %s: %w", ErrDecode, cfg.Name, ref.Source, err)
		}
		m.Tilesets[ts.Name] = ts
		m.Tiles = append(m.Tiles, ts.Tiles...)
	}

	for _, lc := range cfg.Layers {
		switch lc.Type {
		case LayerTile:
			l, err := m.buildLayer(cfg, lc)
			if err != nil {
				return nil, err
			}
			m.Layers[l.Name] = l
			m.order = append(m.order, l)
		case LayerGroup:
			// accepted, but groups don't draw anything (yet)
			continue
		default:
			return nil, fmt.Errorf("%w: map %s: layer %s has unknown type %q", ErrSchema, cfg.Name, lc.Name, lc.Type)
		}
	}

	m.Space = NewBlockSpace(m.Blocks, image.Pt(m.TileWidth, m.TileHeight))

	return m, nil
}

// buildLayer renders a single tile layer, recording any blocks and the
// player start as it goes.
func (m *Map) buildLayer(cfg *MapConfig, lc LayerConfig) (*Layer, error) {
	w, h := lc.Width, lc.Height
	if w == 0 && h == 0 {
		w, h = cfg.Width, cfg.Height
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: map %s: layer %s has invalid size %dx%d", ErrDecode, cfg.Name, lc.Name, w, h)
	}
	if len(lc.Data) != w*h {
		return nil, fmt.Errorf(
			"%w: map %s: layer %s has %d cells, expected %dx%d",
			ErrDecode, cfg.Name, lc.Name, len(lc.Data), w, h,
		)
	}

	surface := image.NewRGBA(image.Rect(0, 0, w*m.TileWidth, h*m.TileHeight))

	for index, cell := range lc.Data {
		t, err := m.TileAt(cell)
		if err != nil {
			return nil, fmt.Errorf("layer %s cell %d: %w", lc.Name, index, err)
		}
		if t == nil {
			continue // empty cell
		}

		// the reverse of index = y * width + x
		x := index % w
		y := index / w

		src := t.Image.Bounds()
		placed := image.Rectangle{
			Min: image.Pt(x*m.TileWidth, y*m.TileHeight),
		}
		placed.Max = placed.Min.Add(src.Size())

		if t.Visible {
			draw.Draw(surface, placed, t.Image, src.Min, draw.Over)
		}
		if t.Block {
			m.Blocks = append(m.Blocks, placed)
		}
		if t.Name == PlayerStart {
			start := placed
			m.PlayerStart = &start
		}
	}

	return &Layer{Name: lc.Name, surface: surface}, nil
}
