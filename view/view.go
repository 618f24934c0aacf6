// Package view draws tilekit maps & entities with ebiten.
package view

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/voidshard/tilekit"
)

// Cache converts images to ebiten images once, on first use.
// Layers & entity frames never change after loading so their ebiten
// versions can be kept forever.
type Cache struct {
	images map[image.Image]*ebiten.Image
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{images: map[image.Image]*ebiten.Image{}}
}

// Image returns the ebiten version of `src`
func (c *Cache) Image(src image.Image) *ebiten.Image {
	im, ok := c.images[src]
	if !ok {
		im = ebiten.NewImageFromImage(src)
		c.images[src] = im
	}
	return im
}

// Len returns the number of cached images
func (c *Cache) Len() int {
	return len(c.images)
}

// Draw a renderable onto screen, as seen by `cam`.
func (c *Cache) Draw(screen *ebiten.Image, r tilekit.Renderable, cam *Camera) {
	src := r.Image()
	if src == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cam.ToScreen(r.Bounds().Min))
	screen.DrawImage(c.Image(src), op)
}

// DrawMap draws every layer of `m` in order
func (c *Cache) DrawMap(screen *ebiten.Image, m *tilekit.Map, cam *Camera) {
	for _, l := range m.Ordered() {
		c.Draw(screen, l, cam)
	}
}

// DrawDebug outlines an entity's known blocks, world rect & collision box
func DrawDebug(screen *ebiten.Image, e *tilekit.Entity, cam *Camera) {
	for _, b := range e.Blocks() {
		strokeRect(screen, b, cam, tilekit.BlockColor)
	}
	strokeRect(screen, e.Bounds(), cam, tilekit.RectColor)
	strokeRect(screen, e.CollisionBox(), cam, tilekit.BoxColor)
}

func strokeRect(screen *ebiten.Image, r image.Rectangle, cam *Camera, clr color.Color) {
	x, y := cam.ToScreen(r.Min)
	vector.StrokeRect(screen, float32(x), float32(y), float32(r.Dx()), float32(r.Dy()), 1, clr, false)
}
