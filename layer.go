package tilekit

import (
	"image"
)

// Layer is the rendered image of one tile layer of a map.
// It's drawn once when the map is built.
type Layer struct {
	Name string

	surface *image.RGBA
}

// Image returns the rendered layer
func (l *Layer) Image() image.Image {
	return l.surface
}

// Bounds of the layer in world pixels; layers are always drawn at the
// map origin.
func (l *Layer) Bounds() image.Rectangle {
	return l.surface.Bounds()
}
