package tilekit

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockSpaceNear(t *testing.T) {
	blocks := []image.Rectangle{
		image.Rect(0, 0, 16, 16),
		image.Rect(-40, -40, -24, -24),
		image.Rect(100, 100, 116, 116),
		image.Rect(15, 15, 31, 31),
	}

	cases := []struct {
		Name   string
		Cell   image.Point
		Area   image.Rectangle
		Expect []image.Rectangle
	}{
		{"single", image.Pt(16, 16), image.Rect(2, 2, 4, 4), []image.Rectangle{blocks[0]}},
		{"declared order", image.Pt(16, 16), image.Rect(14, 14, 18, 18), []image.Rectangle{blocks[0], blocks[3]}},
		{"negative", image.Pt(16, 16), image.Rect(-30, -30, -20, -20), []image.Rectangle{blocks[1]}},
		{"same cell but apart", image.Pt(64, 64), image.Rect(20, 0, 30, 10), nil},
		{"edge touch is not overlap", image.Pt(16, 16), image.Rect(16, 0, 20, 4), nil},
		{"far corner", image.Pt(16, 16), image.Rect(110, 110, 200, 200), []image.Rectangle{blocks[2]}},
		{"outside", image.Pt(16, 16), image.Rect(500, 500, 510, 510), nil},
		{"auto cell", image.Point{}, image.Rect(-50, -50, 120, 120), blocks},
		{"empty area", image.Pt(16, 16), image.Rectangle{}, nil},
	}

	for _, c := range cases {
		space := NewBlockSpace(blocks, c.Cell)

		got := space.Near(c.Area)

		if c.Expect == nil {
			assert.Empty(t, got, c.Name)
		} else {
			assert.Equal(t, c.Expect, got, c.Name)
		}
		assert.Equal(t, blocks, space.Rects())
	}
}

func TestBlockSpaceNearEveryOverlap(t *testing.T) {
	// every rect a linear scan finds is found by the space, for odd cell
	// sizes & rects that straddle cell borders
	blocks := []image.Rectangle{}
	for y := -3; y < 4; y++ {
		for x := -3; x < 4; x++ {
			blocks = append(blocks, image.Rect(x*13, y*11, x*13+9, y*11+17))
		}
	}
	space := NewBlockSpace(blocks, image.Pt(7, 5))

	for y := -50; y < 50; y += 3 {
		for x := -50; x < 50; x += 4 {
			area := image.Rect(x, y, x+6, y+5)
			expect := []image.Rectangle{}
			for _, b := range blocks {
				if b.Overlaps(area) {
					expect = append(expect, b)
				}
			}

			got := space.Near(area)

			assert.ElementsMatch(t, expect, got, "%v", area)
			for i := 1; i < len(got); i++ {
				assert.True(t, indexOf(blocks, got[i-1]) < indexOf(blocks, got[i]))
			}
		}
	}
}

func TestBlockSpaceEmpty(t *testing.T) {
	space := NewBlockSpace(nil, image.Point{})
	assert.Nil(t, space.Near(image.Rect(0, 0, 10, 10)))
	assert.Nil(t, space.Rects())

	space = NewBlockSpace([]image.Rectangle{{}}, image.Pt(16, 16))
	assert.Nil(t, space.Near(image.Rect(0, 0, 10, 10)))
}

func indexOf(rects []image.Rectangle, r image.Rectangle) int {
	for i, v := range rects {
		if v == r {
			return i
		}
	}
	return -1
}
