package tilekit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Drawable is one of Fill, Picture, Outline or Composite.
// It's closed; Draw knows how to draw every kind.
type Drawable interface {
	drawable()
}

// Fill paints a solid colour over Rect
type Fill struct {
	Color color.Color
	Rect  image.Rectangle
}

// Picture draws Image with it's top left at At
type Picture struct {
	Image image.Image
	At    image.Point
}

// Outline strokes the border of each of Rects
type Outline struct {
	Color color.Color
	Rects []image.Rectangle
	Width float64
}

// Composite draws it's parts in order, first at the bottom
type Composite []Drawable

func (Fill) drawable()      {}
func (Picture) drawable()   {}
func (Outline) drawable()   {}
func (Composite) drawable() {}

// Draw `d` onto dst.
func Draw(dst *image.RGBA, d Drawable) {
	switch v := d.(type) {
	case Fill:
		draw.Draw(dst, v.Rect, image.NewUniform(v.Color), image.Point{}, draw.Over)
	case Picture:
		if v.Image == nil {
			return
		}
		b := v.Image.Bounds()
		draw.Draw(dst, image.Rectangle{Min: v.At, Max: v.At.Add(b.Size())}, v.Image, b.Min, draw.Over)
	case Outline:
		strokeRects(dst, v)
	case Composite:
		for _, part := range v {
			Draw(dst, part)
		}
	case nil:
		return
	default:
		panic(fmt.Sprintf("unknown drawable %T", d))
	}
}

// strokeRects outlines rects with gg. Lines are drawn inside each rect so
// a rect's outline never bleeds onto it's neighbours.
func strokeRects(dst *image.RGBA, o Outline) {
	if len(o.Rects) == 0 {
		return
	}
	width := o.Width
	if width <= 0 {
		width = 1
	}

	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(o.Color)
	dc.SetLineWidth(width)
	for _, r := range o.Rects {
		if r.Empty() {
			continue
		}
		dc.DrawRectangle(
			float64(r.Min.X)+width/2,
			float64(r.Min.Y)+width/2,
			float64(r.Dx())-width,
			float64(r.Dy())-width,
		)
	}
	dc.Stroke()
}

// Render draws `d` onto a new transparent image covering `bounds`.
func Render(d Drawable, bounds image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(bounds)
	Draw(dst, d)
	return dst
}

// Frame composes a full frame: background, every map layer in order, then
// the given renderables (in order, later ones on top). Entities in dev
// mode get their debug overlay drawn over everything.
func Frame(m *Map, background color.Color, items ...Renderable) Composite {
	c := Composite{}
	if background != nil {
		c = append(c, Fill{Color: background, Rect: m.Bounds()})
	}
	for _, l := range m.order {
		c = append(c, Picture{Image: l.Image(), At: l.Bounds().Min})
	}

	overlays := Composite{}
	for _, it := range items {
		c = append(c, Picture{Image: it.Image(), At: it.Bounds().Min})
		if e, ok := it.(*Entity); ok && e.DevMode() {
			overlays = append(overlays, DebugOverlay(e))
		}
	}

	return append(c, overlays...)
}

var (
	// debug overlay colours
	BlockColor = color.NRGBA{R: 0xff, A: 0xc0}
	BoxColor   = color.NRGBA{G: 0xff, A: 0xc0}
	RectColor  = color.NRGBA{B: 0xff, A: 0x80}
)

// DebugOverlay outlines the blocks an entity last tested against, it's
// world rect & it's collision box.
func DebugOverlay(e *Entity) Drawable {
	return Composite{
		Outline{Color: BlockColor, Rects: e.Blocks()},
		Outline{Color: RectColor, Rects: []image.Rectangle{e.Bounds()}},
		Outline{Color: BoxColor, Rects: []image.Rectangle{e.CollisionBox()}},
	}
}
