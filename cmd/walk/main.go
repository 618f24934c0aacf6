package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/voidshard/tilekit"
	"github.com/voidshard/tilekit/view"
)

const desc = `Walks an entity around a map. Arrow keys / WASD move, F1 toggles collision overlays, Esc quits.`

var cli struct {
	Config string `short:"c" help:"YAML config file"`
	Root   string `short:"r" help:"asset root directory (overrides config)"`
	Pack   string `help:"asset pack to read from (overrides config)"`

	Map    string `short:"m" required help:"map to load (relative to the asset root)"`
	Entity string `short:"e" required help:"entity to walk around (relative to the asset root)"`

	Width  int  `default:"640" help:"window width in px"`
	Height int  `default:"480" help:"window height in px"`
	TPS    int  `default:"60" help:"ticks per second"`
	Dev    bool `help:"start with collision overlays on"`
}

// game drives a single entity around a single map, one tick per Update
type game struct {
	world  *tilekit.Map
	player *tilekit.Entity
	cache  *view.Cache
	cam    *view.Camera
	tps    int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.player.SetDevMode(!g.player.DevMode())
	}

	g.player.Move(intent(), g.world.Space)
	g.player.Update()

	center, _ := g.player.Anchor("center")
	g.cam.Follow(center, g.world.Bounds())
	g.cam.Update(1 / float32(g.tps))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.cache.DrawMap(screen, g.world, g.cam)
	g.cache.Draw(screen, g.player, g.cam)
	if g.player.DevMode() {
		view.DrawDebug(screen, g.player, g.cam)
	}
	g.cache.DrawHUD(screen, g.player)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cam.Width, g.cam.Height
}

// intent reads the movement keys
func intent() tilekit.Vec {
	v := tilekit.Vec{}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v.Y++
	}
	return v
}

func main() {
	kong.Parse(&cli, kong.Name("walk"), kong.Description(desc))

	cfg := tilekit.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = tilekit.LoadConfig(cli.Config)
		if err != nil {
			panic(err)
		}
	}
	if cli.Root != "" {
		cfg.AssetRoot = cli.Root
	}
	if cli.Pack != "" {
		cfg.Pack = cli.Pack
	}
	log, err := cfg.Logger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	src, closer, err := cfg.Source()
	if err != nil {
		panic(err)
	}

	l := tilekit.NewLoader(src)
	l.Log = log
	l.DevMode = cfg.DevMode || cli.Dev

	world, err := l.Map(cli.Map)
	if err != nil {
		panic(err)
	}
	player, err := l.Entity(cli.Entity)
	if err != nil {
		panic(err)
	}
	closer() // everything is loaded; we don't touch the source again
	log.Info("loaded", zap.String("map", world.Name), zap.String("entity", player.Name))

	player.SpawnAt(world.PlayerStart)

	g := &game{
		world:  world,
		player: player,
		cache:  view.NewCache(),
		cam:    view.NewCamera(cli.Width, cli.Height),
		tps:    cli.TPS,
	}
	center, _ := player.Anchor("center")
	g.cam.Follow(center, world.Bounds())
	g.cam.Snap()

	ebiten.SetTPS(cli.TPS)
	ebiten.SetWindowSize(cli.Width, cli.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("walk: %s", world.Name))
	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
