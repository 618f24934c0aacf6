package tilekit

import (
	"image"
)

// Vec is a movement intent. Only the sign of each component matters; an
// entity always steps by it's speed.
type Vec struct {
	X, Y int
}

// sign returns -1, 0 or 1
func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// clamp v into [lo, hi]
func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// ApplyMovement moves the entity one step in the direction of `intent`,
// resolving collisions against `blocks`.
//
// Axes are handled separately; X is moved & corrected completely before Y
// is considered. On each axis an overlapping block pushes the collision
// box back so it sits flush against the block's near edge, and the
// position is derived from the box (minus it's fixed offset) so repeated
// corrections never drift. A correction never moves the entity further
// than it's speed from where the axis step started.
//
// A zero intent marks the entity idle & leaves it's facing alone.
func (e *Entity) ApplyMovement(intent Vec, blocks []image.Rectangle) {
	e.Move(intent, NewBlockSpace(blocks, image.Point{}))
}

// Move is ApplyMovement against an already indexed set of blocks, such
// as Map.Space.
func (e *Entity) Move(intent Vec, space *BlockSpace) {
	e.blocks = space.Rects()

	dx, dy := sign(intent.X), sign(intent.Y)
	if dx == 0 && dy == 0 {
		e.moving = false
		return
	}

	if dx != 0 {
		if dx > 0 {
			e.facing = Right
		} else {
			e.facing = Left
		}
		e.moving = true
		// every position the correction may land on
		reach := space.Near(e.CollisionBox().Inset(-e.speed))
		before := e.rect.Min.X
		e.rect = e.rect.Add(image.Pt(dx*e.speed, 0))
		e.collideX(dx, before, reach)
	}

	if dy != 0 {
		if dy > 0 {
			e.facing = Down
		} else {
			e.facing = Up
		}
		e.moving = true
		reach := space.Near(e.CollisionBox().Inset(-e.speed))
		before := e.rect.Min.Y
		e.rect = e.rect.Add(image.Pt(0, dy*e.speed))
		e.collideY(dy, before, reach)
	}
}

// collideX pushes the entity out of any block it overlaps after moving
// along X in direction dx from `before`
func (e *Entity) collideX(dx, before int, blocks []image.Rectangle) {
	for _, b := range blocks {
		if !e.CollisionBox().Overlaps(b) {
			continue
		}

		var x int
		if dx > 0 {
			// box right edge flush with block left edge
			x = b.Min.X - e.box.Max.X
		} else {
			x = b.Max.X - e.box.Min.X
		}
		x = clamp(x, before-e.speed, before+e.speed)
		e.SetPosition(image.Pt(x, e.rect.Min.Y))
	}
}

// collideY pushes the entity out of any block it overlaps after moving
// along Y in direction dy from `before`
func (e *Entity) collideY(dy, before int, blocks []image.Rectangle) {
	for _, b := range blocks {
		if !e.CollisionBox().Overlaps(b) {
			continue
		}

		var y int
		if dy > 0 {
			y = b.Min.Y - e.box.Max.Y
		} else {
			y = b.Max.Y - e.box.Min.Y
		}
		y = clamp(y, before-e.speed, before+e.speed)
		e.SetPosition(image.Pt(e.rect.Min.X, y))
	}
}
