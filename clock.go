package tilekit

import (
	"fmt"
	"image"
)

// Clock cycles through a window of frames on a fixed duration (in ticks),
// independent of anything else going on.
//
// The countdown timer runs from duration to 0. The frame pointer advances
// each time the timer lands on one of n evenly spaced trigger points
// (i * duration/n for i in [0, n)). The spacing is integer division, so for
// durations short relative to the frame count several trigger points land
// on the same tick & frames get skipped. That's expected.
type Clock struct {
	frames   []image.Image
	duration int
	timer    int
	timemod  int
	pointer  int
}

// NewClock creates a clock over frames[sequence[0] : sequence[last]+1].
// Frames must be non empty & the sequence must reference frames that exist.
func NewClock(frames []image.Image, sequence []int, duration int) (*Clock, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: animation has no frames", ErrIndex)
	}
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: animation has an empty sequence", ErrIndex)
	}

	first, last := sequence[0], sequence[len(sequence)-1]
	if first < 0 || last >= len(frames) || first > last {
		return nil, fmt.Errorf("%w: animation sequence [%d, %d] invalid for %d frames", ErrIndex, first, last, len(frames))
	}

	c := &Clock{frames: frames[first : last+1]}
	c.SetDuration(duration)
	return c, nil
}

// SetDuration restarts timing with a new duration. The current frame is
// kept. Negative durations are treated as 0 (a clock that never advances).
func (c *Clock) SetDuration(d int) {
	if d < 0 {
		d = 0
	}
	c.duration = d
	c.timer = d
	c.timemod = d / len(c.frames)
}

// Tick advances the clock by one tick.
func (c *Clock) Tick() {
	if c.timer == 0 {
		c.timer = c.duration
		return
	}

	c.timer--
	for i := 0; i < len(c.frames); i++ {
		if c.timer == i*c.timemod {
			c.pointer = (c.pointer + 1) % len(c.frames)
		}
	}
}

// Current returns the frame the clock is pointing at
func (c *Clock) Current() image.Image {
	return c.frames[c.pointer]
}

// Pointer returns the index of the current frame (within the clock's window)
func (c *Clock) Pointer() int {
	return c.pointer
}

// Len returns the number of frames the clock cycles through
func (c *Clock) Len() int {
	return len(c.frames)
}

// Duration in ticks
func (c *Clock) Duration() int {
	return c.duration
}

// Timer returns the current countdown value, in [0, duration]
func (c *Clock) Timer() int {
	return c.timer
}
