package tilekit

import (
	"image"
)

// Renderable is something that can be drawn: an image placed at some
// rectangle in world (pixel) space.
type Renderable interface {
	// Image to draw. May be nil if there is nothing to draw yet.
	Image() image.Image

	// Bounds is where Image goes, in world pixels.
	Bounds() image.Rectangle
}

// Updatable is something advanced once per tick by the frame driver.
type Updatable interface {
	Update()
}
