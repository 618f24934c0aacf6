package view

import (
	"image"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is a window of Width x Height pixels onto the world, with it's
// top left at (X, Y). Following a target eases the camera there rather
// than snapping.
type Camera struct {
	X, Y float64

	Width  int
	Height int

	// Duration is how long (in seconds) the camera takes to reach a new target
	Duration float32

	// Ease is the easing function used when moving to a target
	Ease ease.TweenFunc

	target image.Point
	tx, ty *gween.Tween
}

// NewCamera returns a camera of the given size at the world origin
func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:    width,
		Height:   height,
		Duration: 0.25,
		Ease:     ease.OutQuad,
	}
}

// Follow sets the camera to center on `p`, kept within `world` where the
// world is larger than the camera. The move happens over the following
// Update calls.
func (c *Camera) Follow(p image.Point, world image.Rectangle) {
	target := image.Pt(
		clamp(p.X-c.Width/2, world.Min.X, world.Max.X-c.Width),
		clamp(p.Y-c.Height/2, world.Min.Y, world.Max.Y-c.Height),
	)
	if target == c.target && (c.tx != nil || c.at(target)) {
		return
	}
	c.target = target
	c.tx = gween.New(float32(c.X), float32(target.X), c.Duration, c.Ease)
	c.ty = gween.New(float32(c.Y), float32(target.Y), c.Duration, c.Ease)
}

// Snap moves the camera straight to it's target
func (c *Camera) Snap() {
	c.X, c.Y = float64(c.target.X), float64(c.target.Y)
	c.tx, c.ty = nil, nil
}

// Update advances the camera's easing by dt seconds
func (c *Camera) Update(dt float32) {
	if c.tx == nil || c.ty == nil {
		return
	}

	x, xdone := c.tx.Update(dt)
	y, ydone := c.ty.Update(dt)
	c.X, c.Y = float64(x), float64(y)
	if xdone && ydone {
		c.Snap()
	}
}

// at returns if the camera sits exactly on `p`
func (c *Camera) at(p image.Point) bool {
	return c.X == float64(p.X) && c.Y == float64(p.Y)
}

// Target returns where the camera is heading
func (c *Camera) Target() image.Point {
	return c.target
}

// ToScreen converts a world point to screen coords
func (c *Camera) ToScreen(p image.Point) (float64, float64) {
	return float64(p.X) - c.X, float64(p.Y) - c.Y
}

// clamp v to [lo, hi]; if the range is empty (world smaller than the
// camera) lo wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
