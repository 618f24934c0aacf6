package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/voidshard/tilekit"
)

const desc = `Tools for working with tilekit assets.

Maps are Tiled JSON (or TMX) files whose tilesets live in sibling directories as JSON
(tileset "../tilesets/grass.tsx" is read from "tilesets/grass.json"). Assets are read
from --root, or from an asset pack built with 'tilec pack'.`

var log = zap.NewNop()

var cli struct {
	Config    string `short:"c" help:"YAML config file"`
	Root      string `short:"r" help:"asset root directory (overrides config)"`
	Pack      string `help:"asset pack to read from (overrides config)"`
	LogLevel  string `help:"log level: debug, info, warn, error (overrides config)"`
	LogFormat string `help:"log format: console or json (overrides config)"`

	Inspect struct {
		Map string `short:"m" required help:"map to inspect (relative to the asset root)"`
	} `cmd help:"print a summary of a map"`

	Render struct {
		Map        string  `short:"m" required help:"map to render (relative to the asset root)"`
		Entity     string  `short:"e" help:"entity to draw at the player start"`
		Out        string  `short:"o" default:"map.png" help:"output png"`
		Blocks     bool    `help:"outline blocking tiles"`
		Scale      float64 `help:"scale output by this factor (overrides config)"`
		Background string  `default:"000000" help:"background colour (hex rgb)"`
	} `cmd help:"render a map (and optionally an entity) to a png"`

	Convert struct {
		In  string `short:"i" required help:"input .tmx or .tsx file (on disk)"`
		Out string `short:"o" help:"output .json file; defaults to input with a .json extension"`
	} `cmd help:"convert a TMX map or TSX tileset into JSON"`

	PackCmd struct {
		Dir       string `short:"d" required help:"asset directory to pack"`
		Out       string `short:"o" default:"assets.pack" help:"pack file to write (added to if it exists)"`
		Overwrite bool   `help:"remove any existing pack first"`
	} `cmd name:"pack" help:"pack an asset directory into a single sqlite file"`

	Schema struct {
		Kind string `short:"k" required help:"asset kind: map, tileset or entity"`
		Out  string `short:"o" help:"output file; defaults to stdout"`
	} `cmd help:"write the JSON schema of an asset file kind"`

	Cut struct {
		Input      string `short:"i" required help:"input image"`
		TileWidth  int    `default:"16" help:"width of each tile in px"`
		TileHeight int    `default:"16" help:"height of each tile in px"`
		LineWidth  int    `default:"1" help:"width of the grid lines between tiles in px"`
	} `cmd help:"remove grid lines from a tileset image by cutting out tiles & re-glueing them"`
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("tilec"),
		kong.Description(desc),
	)

	cfg, err := config()
	if err != nil {
		fatal(err)
	}
	log, err = cfg.Logger()
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	switch ctx.Command() {
	case "inspect":
		err = inspect(cfg)
	case "render":
		err = render(cfg)
	case "convert":
		err = convert()
	case "pack":
		err = pack()
	case "schema":
		err = schema()
	case "cut":
		err = cut()
	default:
		err = fmt.Errorf("unknown command %s", ctx.Command())
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	log.Error("tilec failed", zap.Error(err))
	log.Sync()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// config reads the config file (if any) & applies flag overrides
func config() (*tilekit.Config, error) {
	cfg := tilekit.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = tilekit.LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
	}
	if cli.Root != "" {
		cfg.AssetRoot = cli.Root
	}
	if cli.Pack != "" {
		cfg.Pack = cli.Pack
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.LogFormat = cli.LogFormat
	}
	return cfg, nil
}

// loader opens the configured asset source
func loader(cfg *tilekit.Config) (*tilekit.Loader, func() error, error) {
	src, closer, err := cfg.Source()
	if err != nil {
		return nil, nil, err
	}
	l := tilekit.NewLoader(src)
	l.Log = log
	l.DevMode = cfg.DevMode
	return l, closer, nil
}

func inspect(cfg *tilekit.Config) error {
	l, closer, err := loader(cfg)
	if err != nil {
		return err
	}
	defer closer()

	m, err := l.Map(cli.Inspect.Map)
	if err != nil {
		return err
	}

	fmt.Printf("map %s: %dx%d px, tiles %dx%d px\n", m.Name, m.Width, m.Height, m.TileWidth, m.TileHeight)
	for name, ts := range m.Tilesets {
		fmt.Printf("  tileset %s (%s): %d tiles\n", name, ts.Path, ts.Len())
	}
	for _, layer := range m.Ordered() {
		fmt.Printf("  layer %s: %v\n", layer.Name, layer.Bounds())
	}
	fmt.Printf("  blocks: %d\n", len(m.Blocks))
	if m.PlayerStart != nil {
		fmt.Printf("  player start: %v\n", *m.PlayerStart)
	} else {
		fmt.Println("  player start: none")
	}
	return nil
}

func render(cfg *tilekit.Config) error {
	l, closer, err := loader(cfg)
	if err != nil {
		return err
	}
	defer closer()

	m, err := l.Map(cli.Render.Map)
	if err != nil {
		return err
	}

	bg, err := parseHex(cli.Render.Background)
	if err != nil {
		return err
	}

	items := []tilekit.Renderable{}
	if cli.Render.Entity != "" {
		e, err := l.Entity(cli.Render.Entity)
		if err != nil {
			return err
		}
		e.SpawnAt(m.PlayerStart)
		// one idle step so the entity knows the map's blocks for it's overlay
		e.Move(tilekit.Vec{}, m.Space)
		e.Update()
		items = append(items, e)
	}

	frame := tilekit.Frame(m, bg, items...)
	if cli.Render.Blocks {
		frame = append(frame, tilekit.Outline{Color: tilekit.BlockColor, Rects: m.Blocks})
	}

	var out image.Image = tilekit.Render(frame, m.Bounds())

	scale := cfg.Scale
	if cli.Render.Scale > 0 {
		scale = cli.Render.Scale
	}
	if scale > 0 && scale != 1 {
		out = resize.Resize(uint(float64(m.Width)*scale), uint(float64(m.Height)*scale), out, resize.NearestNeighbor)
	}

	err = savePng(cli.Render.Out, out)
	if err != nil {
		return err
	}
	fmt.Println("wrote", cli.Render.Out)
	return nil
}

func convert() error {
	data, err := ioutil.ReadFile(cli.Convert.In)
	if err != nil {
		return err
	}

	out := cli.Convert.Out
	if out == "" {
		out = strings.TrimSuffix(cli.Convert.In, filepath.Ext(cli.Convert.In)) + ".json"
	}

	var v interface{}
	switch strings.ToLower(filepath.Ext(cli.Convert.In)) {
	case ".tmx":
		m, err := tilekit.DecodeTMX(bytes.NewReader(data))
		if err != nil {
			return err
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(filepath.Base(cli.Convert.In), filepath.Ext(cli.Convert.In))
		}
		v = m
	case ".tsx":
		ts, err := tilekit.DecodeTSX(bytes.NewReader(data))
		if err != nil {
			return err
		}
		v = ts
	default:
		return fmt.Errorf("don't know how to convert %s (expected .tmx or .tsx)", cli.Convert.In)
	}

	buff := bytes.Buffer{}
	err = tilekit.EncodeJSON(&buff, v)
	if err != nil {
		return err
	}
	err = ioutil.WriteFile(out, buff.Bytes(), 0644)
	if err != nil {
		return err
	}
	fmt.Println("wrote", out)
	return nil
}

func pack() error {
	if cli.PackCmd.Overwrite {
		err := os.Remove(cli.PackCmd.Out)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	p, err := tilekit.OpenPack(cli.PackCmd.Out)
	if err != nil {
		return err
	}
	defer p.Close()

	n, err := p.AddDir(cli.PackCmd.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("packed %d files from %s into %s\n", n, cli.PackCmd.Dir, cli.PackCmd.Out)
	return nil
}

func schema() error {
	s, err := tilekit.Schema(cli.Schema.Kind)
	if err != nil {
		return err
	}

	buff := bytes.Buffer{}
	err = tilekit.EncodeJSON(&buff, s)
	if err != nil {
		return err
	}
	if cli.Schema.Out == "" {
		_, err = os.Stdout.Write(buff.Bytes())
		return err
	}
	return ioutil.WriteFile(cli.Schema.Out, buff.Bytes(), 0644)
}

func cut() error {
	imgdata, err := ioutil.ReadFile(cli.Cut.Input)
	if err != nil {
		return err
	}

	in, _, err := image.Decode(bytes.NewBuffer(imgdata))
	if err != nil {
		return err
	}

	tw, th, lw := cli.Cut.TileWidth, cli.Cut.TileHeight, cli.Cut.LineWidth
	bnds := in.Bounds()
	tilesHigh := (bnds.Dy() - lw) / (th + lw)
	tilesWide := (bnds.Dx() - lw) / (tw + lw)
	if tilesHigh < 1 || tilesWide < 1 {
		return fmt.Errorf("%s is too small for %dx%d tiles", cli.Cut.Input, tw, th)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw*tilesWide, th*tilesHigh))
	for ty := 0; ty < tilesHigh; ty++ {
		for tx := 0; tx < tilesWide; tx++ {
			drect := image.Rect(tx*tw, ty*th, (tx+1)*tw, (ty+1)*th)
			spnt := bnds.Min.Add(image.Pt(lw+tx*(tw+lw), lw+ty*(th+lw)))
			log.Debug("copying tile", zap.Stringer("from", spnt), zap.Stringer("to", drect))
			draw.Draw(dst, drect, in, spnt, draw.Src)
		}
	}

	out := fmt.Sprintf("%s.cut.png", cli.Cut.Input)
	err = savePng(out, dst)
	if err != nil {
		return err
	}
	fmt.Println("wrote", out)
	return nil
}

// savePng to disk
func savePng(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, buff.Bytes(), 0644)
}

// parseHex reads "rrggbb" (with or without a leading #) into a colour
func parseHex(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %v", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
