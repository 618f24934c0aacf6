package tilekit

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

// DefaultAvatarSize is the max width / height of entity avatar thumbnails
const DefaultAvatarSize = 32

// Loader reads maps, tilesets & entities (and their images) from a Source.
// All paths are slash separated & relative to the source root.
//
// Loading is a one off, blocking affair done before the frame loop starts.
type Loader struct {
	Source Source

	// Log receives debug / warning messages. Defaults to a no-op logger
	Log *zap.Logger

	// AvatarSize bounds entity avatar thumbnails (in pixels)
	AvatarSize uint

	// DevMode forces debug overlays on for all loaded entities
	DevMode bool
}

// NewLoader returns a loader reading from `src` with default settings.
func NewLoader(src Source) *Loader {
	return &Loader{
		Source:     src,
		Log:        zap.NewNop(),
		AvatarSize: DefaultAvatarSize,
	}
}

// read a file from our source, any error is a decode error
func (l *Loader) read(name string) ([]byte, error) {
	data, err := l.Source.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return data, nil
}

// image reads & decodes an image file
func (l *Loader) image(name string) (image.Image, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, err
	}
	return decodeImage(name, data)
}

// relative resolves `name` against the directory of `base`, or against
// `dir` if set.
func relative(base, dir, name string) string {
	if dir != "" {
		return path.Join(dir, name)
	}
	return path.Join(path.Dir(base), name)
}

// TilesetConfig reads a tileset definition; .tsx & .xml files are read
// as TSX, anything else as JSON.
func (l *Loader) TilesetConfig(name string) (*TilesetConfig, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	var cfg *TilesetConfig
	switch strings.ToLower(path.Ext(name)) {
	case ".tsx", ".xml":
		cfg, err = DecodeTSX(bytes.NewReader(data))
	default:
		cfg, err = DecodeTilesetJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if cfg.Name == "" {
		cfg.Name = stem(name)
	}
	return cfg, nil
}

// Tileset reads a tileset definition & it's image.
func (l *Loader) Tileset(name string) (*Tileset, error) {
	cfg, err := l.TilesetConfig(name)
	if err != nil {
		return nil, err
	}

	img, err := l.image(relative(name, cfg.Filepath, cfg.Image))
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", name, err)
	}

	ts, err := NewTileset(cfg, img, name)
	if err != nil {
		return nil, err
	}

	l.logger().Debug(
		"tileset loaded",
		zap.String("name", ts.Name), zap.String("path", name), zap.Int("tiles", ts.Len()),
	)
	return ts, nil
}

// MapConfig reads a map definition; .tmx & .xml files are read as TMX,
// anything else as JSON.
func (l *Loader) MapConfig(name string) (*MapConfig, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	var cfg *MapConfig
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx", ".xml":
		cfg, err = DecodeTMX(bytes.NewReader(data))
	default:
		cfg, err = DecodeMapJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if cfg.Name == "" {
		cfg.Name = stem(name)
	}
	return cfg, nil
}

// Map reads a map definition, loads the tilesets it references & builds
// the map.
//
// Tileset sources are mapped with TilesetPath & read relative to the
// source root.
func (l *Loader) Map(name string) (*Map, error) {
	cfg, err := l.MapConfig(name)
	if err != nil {
		return nil, err
	}

	offset := 0
	resolve := func(ref TilesetRef) (*Tileset, error) {
		ts, err := l.Tileset(TilesetPath(ref.Source))
		if err != nil {
			return nil, err
		}
		if ref.FirstGID != 0 && ref.FirstGID != offset+1 {
			// cell values are resolved by concatenating tilesets, not by
			// firstgid, so a gap here means cells point at the wrong tiles
			l.logger().Warn(
				"tileset firstgid does not match tile order",
				zap.String("map", cfg.Name),
				zap.String("tileset", ts.Name),
				zap.Int("firstgid", ref.FirstGID),
				zap.Int("expected", offset+1),
			)
		}
		offset += ts.Len()
		return ts, nil
	}

	m, err := BuildMap(cfg, resolve)
	if err != nil {
		return nil, err
	}

	l.logger().Debug(
		"map loaded",
		zap.String("name", m.Name),
		zap.String("path", name),
		zap.Int("layers", len(m.order)),
		zap.Int("tiles", len(m.Tiles)),
		zap.Int("blocks", len(m.Blocks)),
		zap.Bool("player_start", m.PlayerStart != nil),
	)
	return m, nil
}

// EntityConfig reads an entity definition
func (l *Loader) EntityConfig(name string) (*EntityConfig, error) {
	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	cfg, err := DecodeEntityJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if cfg.Name == "" {
		cfg.Name = stem(name)
	}
	return cfg, nil
}

// Entity reads an entity definition, it's frame sheet & avatar (if any).
func (l *Loader) Entity(name string) (*Entity, error) {
	cfg, err := l.EntityConfig(name)
	if err != nil {
		return nil, err
	}
	if l.DevMode {
		cfg.DevMode = true
	}

	sheet, err := l.image(relative(name, cfg.Filepath, cfg.Image))
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", name, err)
	}

	e, err := NewEntity(cfg, sheet)
	if err != nil {
		return nil, err
	}

	if cfg.Avatar != "" {
		avatar, err := l.image(relative(name, cfg.Filepath, cfg.Avatar))
		if err != nil {
			return nil, fmt.Errorf("entity %s: avatar: %w", name, err)
		}
		e.avatar = thumbnail(avatar, l.avatarSize())
	}

	l.logger().Debug(
		"entity loaded",
		zap.String("name", e.Name), zap.String("path", name),
		zap.Int("frames", len(e.frames)), zap.Int("animations", len(e.anims)),
	)
	return e, nil
}

func (l *Loader) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

func (l *Loader) avatarSize() uint {
	if l.AvatarSize == 0 {
		return DefaultAvatarSize
	}
	return l.AvatarSize
}

// thumbnail shrinks `in` to fit in a size x size box, keeping it's aspect
// ratio. Images that already fit are returned as is.
func thumbnail(in image.Image, size uint) image.Image {
	b := in.Bounds()
	if uint(b.Dx()) <= size && uint(b.Dy()) <= size {
		return in
	}
	return resize.Thumbnail(size, size, in, resize.Lanczos3)
}

// stem returns a file name without directory or extension
func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
