package tilekit

import (
	"fmt"
	"image"
	"sort"
)

// Facing is the direction an entity last moved (or idles) toward.
type Facing int

const (
	Down Facing = iota
	Left
	Up
	Right
)

func (f Facing) String() string {
	switch f {
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Facing(%d)", int(f))
}

const (
	// Walk animation names; one per facing
	WalkDown  = "walk_down"
	WalkLeft  = "walk_left"
	WalkUp    = "walk_up"
	WalkRight = "walk_right"
)

// walkAnimations maps each facing to the animation played while moving
var walkAnimations = map[Facing]string{
	Down:  WalkDown,
	Left:  WalkLeft,
	Up:    WalkUp,
	Right: WalkRight,
}

// DefaultAnimations are used when an entity config doesn't name any.
// The sheet is expected to hold 4 frames per row: idle poses first, then
// one row per walk direction (down, left, up, right).
func DefaultAnimations() map[string][2]int {
	return map[string][2]int{
		WalkDown:  {4, 7},
		WalkLeft:  {8, 11},
		WalkUp:    {12, 15},
		WalkRight: {16, 19},
	}
}

// anchors resolve named points on a rect
var anchors = map[string]func(r image.Rectangle) image.Point{
	"topleft":     func(r image.Rectangle) image.Point { return r.Min },
	"midtop":      func(r image.Rectangle) image.Point { return image.Pt((r.Min.X+r.Max.X)/2, r.Min.Y) },
	"topright":    func(r image.Rectangle) image.Point { return image.Pt(r.Max.X, r.Min.Y) },
	"midleft":     func(r image.Rectangle) image.Point { return image.Pt(r.Min.X, (r.Min.Y+r.Max.Y)/2) },
	"center":      func(r image.Rectangle) image.Point { return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2) },
	"midright":    func(r image.Rectangle) image.Point { return image.Pt(r.Max.X, (r.Min.Y+r.Max.Y)/2) },
	"bottomleft":  func(r image.Rectangle) image.Point { return image.Pt(r.Min.X, r.Max.Y) },
	"midbottom":   func(r image.Rectangle) image.Point { return image.Pt((r.Min.X+r.Max.X)/2, r.Max.Y) },
	"bottomright": func(r image.Rectangle) image.Point { return r.Max },
}

// Entity is an animated sprite that moves around a map, colliding with
// it's blocks.
type Entity struct {
	Name string

	frames []image.Image
	image  image.Image
	avatar image.Image

	// world rect; position + frame size
	rect image.Rectangle

	// collision box, relative to rect.Min
	box image.Rectangle

	anims map[string]*Clock

	// pixels per tick
	speed int

	facing Facing
	moving bool

	// blocks we last tested against
	blocks []image.Rectangle

	devMode bool
}

// NewEntity slices `sheet` into frames & sets up the entity's animations.
// Each animation clock runs for cfg.AnimationSpeed ticks.
//
// The first 4 frames are the idle poses (down, left, up, right). Every
// facing needs a walk animation.
func NewEntity(cfg *EntityConfig, sheet image.Image) (*Entity, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fw, fh := cfg.FrameSize[0], cfg.FrameSize[1]
	frames := slice(sheet, fw, fh)
	if len(frames) < len(walkAnimations) {
		return nil, fmt.Errorf(
			"%w: entity %s: sheet holds %d frames, need at least %d idle frames",
			ErrIndex, cfg.Name, len(frames), len(walkAnimations),
		)
	}

	e := &Entity{
		Name:    cfg.Name,
		frames:  frames,
		image:   frames[idleFrame(Down)],
		rect:    image.Rect(0, 0, fw, fh),
		box:     image.Rect(cfg.CollisionBox[0], cfg.CollisionBox[1], cfg.CollisionBox[0]+cfg.CollisionBox[2], cfg.CollisionBox[1]+cfg.CollisionBox[3]),
		anims:   map[string]*Clock{},
		speed:   cfg.Speed,
		facing:  Down,
		blocks:  []image.Rectangle{},
		devMode: cfg.DevMode,
	}

	sequences := cfg.Animations
	if sequences == nil {
		sequences = DefaultAnimations()
	}
	names := make([]string, 0, len(sequences))
	for name := range sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		seq := sequences[name]
		c, err := NewClock(frames, seq[:], cfg.AnimationSpeed)
		if err != nil {
			return nil, fmt.Errorf("entity %s animation %s: %w", cfg.Name, name, err)
		}
		e.anims[name] = c
	}

	for _, facing := range []Facing{Down, Left, Up, Right} {
		name := walkAnimations[facing]
		if _, ok := e.anims[name]; !ok {
			return nil, fmt.Errorf("%w: entity %s has no %s animation for facing %s", ErrLookup, cfg.Name, name, facing)
		}
	}

	return e, nil
}

// idleFrame returns the frame index of the idle pose for a facing
func idleFrame(f Facing) int {
	return int(f)
}

// Update selects the entity's image for this tick. Moving entities show
// (& advance) the walk animation for their facing, idle ones show the
// idle pose. Moving is reset after; it must be set again by the next
// ApplyMovement.
func (e *Entity) Update() {
	if e.moving {
		c := e.anims[walkAnimations[e.facing]]
		e.image = c.Current()
		c.Tick()
	} else {
		e.image = e.frames[idleFrame(e.facing)]
	}
	e.moving = false
}

// Image returns the entity's current image
func (e *Entity) Image() image.Image {
	return e.image
}

// Bounds returns the entity's world rect
func (e *Entity) Bounds() image.Rectangle {
	return e.rect
}

// Position returns the top left of the entity in world pixels
func (e *Entity) Position() image.Point {
	return e.rect.Min
}

// SetPosition moves the entity's top left to `p`, no collision checks.
func (e *Entity) SetPosition(p image.Point) {
	e.rect = e.rect.Add(p.Sub(e.rect.Min))
}

// SpawnAt places the entity at the top left of `r` (usually a map's
// PlayerStart). A nil rect leaves the entity where it is.
func (e *Entity) SpawnAt(r *image.Rectangle) {
	if r == nil {
		return
	}
	e.SetPosition(r.Min)
}

// CollisionBox returns the collision box in world pixels. It's always
// the entity's position plus the fixed box offset.
func (e *Entity) CollisionBox() image.Rectangle {
	return e.box.Add(e.rect.Min)
}

// BoxOffset returns the collision box relative to the entity's position
func (e *Entity) BoxOffset() image.Rectangle {
	return e.box
}

// Facing returns the direction the entity faces
func (e *Entity) Facing() Facing {
	return e.facing
}

// Moving returns if the entity moved since the last Update
func (e *Entity) Moving() bool {
	return e.moving
}

// Speed in pixels per tick
func (e *Entity) Speed() int {
	return e.speed
}

// SetSpeed sets the speed in pixels per tick (negative is treated as 0)
func (e *Entity) SetSpeed(s int) {
	if s < 0 {
		s = 0
	}
	e.speed = s
}

// Frames returns the number of frames cut from the entity's sheet
func (e *Entity) Frames() int {
	return len(e.frames)
}

// Animation returns the named animation clock
func (e *Entity) Animation(name string) (*Clock, error) {
	c, ok := e.anims[name]
	if !ok {
		return nil, fmt.Errorf("%w: entity %s has no animation %q", ErrLookup, e.Name, name)
	}
	return c, nil
}

// Anchor returns a named point (topleft, midtop, center, midbottom ..)
// of the entity's world rect.
func (e *Entity) Anchor(name string) (image.Point, error) {
	fn, ok := anchors[name]
	if !ok {
		return image.Point{}, fmt.Errorf("%w: unknown anchor %q", ErrLookup, name)
	}
	return fn(e.rect), nil
}

// Blocks returns the rects the entity last tested collisions against
func (e *Entity) Blocks() []image.Rectangle {
	return e.blocks
}

// Avatar returns the entity's avatar thumbnail (nil if it has none)
func (e *Entity) Avatar() image.Image {
	return e.avatar
}

// DevMode returns if debug overlays should be drawn for this entity
func (e *Entity) DevMode() bool {
	return e.devMode
}

// SetDevMode toggles debug overlays
func (e *Entity) SetDevMode(on bool) {
	e.devMode = on
}
