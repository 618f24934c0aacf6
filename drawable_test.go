package tilekit

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red         = color.RGBA{R: 0xff, A: 0xff}
	blue        = color.RGBA{B: 0xff, A: 0xff}
	transparent = color.RGBA{}
)

func TestDrawFillAndPicture(t *testing.T) {
	d := Composite{
		Fill{Color: red, Rect: image.Rect(0, 0, 20, 20)},
		Picture{Image: solid(4, 4, blue), At: image.Pt(10, 12)},
		Picture{}, // nothing to draw
		nil,
	}

	out := Render(d, image.Rect(0, 0, 30, 30))

	assert.Equal(t, red, rgba(out, 0, 0))
	assert.Equal(t, red, rgba(out, 19, 19))
	assert.Equal(t, transparent, rgba(out, 20, 20))
	assert.Equal(t, blue, rgba(out, 10, 12))
	assert.Equal(t, blue, rgba(out, 13, 15))
	assert.Equal(t, red, rgba(out, 14, 15))
}

func TestDrawCompositeOrder(t *testing.T) {
	r := image.Rect(0, 0, 4, 4)

	out := Render(Composite{Fill{Color: red, Rect: r}, Fill{Color: blue, Rect: r}}, r)
	assert.Equal(t, blue, rgba(out, 1, 1))

	out = Render(Composite{Fill{Color: blue, Rect: r}, Fill{Color: red, Rect: r}}, r)
	assert.Equal(t, red, rgba(out, 1, 1))
}

func TestDrawOutline(t *testing.T) {
	out := Render(
		Outline{Color: red, Rects: []image.Rectangle{image.Rect(2, 2, 12, 12), {}}, Width: 2},
		image.Rect(0, 0, 16, 16),
	)

	// border drawn inside the rect
	assert.NotEqual(t, uint8(0), rgba(out, 6, 2).R)
	assert.NotEqual(t, uint8(0), rgba(out, 2, 6).R)
	assert.NotEqual(t, uint8(0), rgba(out, 11, 6).R)

	// inside & outside untouched
	assert.Equal(t, transparent, rgba(out, 7, 7))
	assert.Equal(t, transparent, rgba(out, 0, 0))
	assert.Equal(t, transparent, rgba(out, 13, 13))
}

type unknownDrawable struct{}

func (unknownDrawable) drawable() {}

func TestDrawUnknownPanics(t *testing.T) {
	assert.Panics(t, func() {
		Render(unknownDrawable{}, image.Rect(0, 0, 1, 1))
	})
}

func TestFrame(t *testing.T) {
	m, err := BuildMap(simpleMap([]int{1, 0}, 2, 1), simpleResolver(t))
	require.Nil(t, err)

	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)
	e.SetPosition(image.Pt(20, 0))

	frame := Frame(m, color.White, e)
	require.Len(t, frame, 3)
	assert.IsType(t, Fill{}, frame[0])
	assert.IsType(t, Picture{}, frame[1])
	assert.Equal(t, image.Pt(20, 0), frame[2].(Picture).At)

	out := Render(frame, m.Bounds())
	assert.Equal(t, color.RGBA{G: 0x80, A: 0xff}, rgba(out, 0, 0)) // tile 0
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, rgba(out, 16, 0))
	assert.Equal(t, uint8(0), rgba(out, 20, 0).R) // entity idle frame 0

	e.SetDevMode(true)
	frame = Frame(m, nil, e)
	require.Len(t, frame, 3)
	assert.IsType(t, Composite{}, frame[2])
}

func TestDebugOverlay(t *testing.T) {
	e, err := NewEntity(testEntityConfig(), indexedSheet(4, 5, 10, 10))
	require.Nil(t, err)
	blocks := []image.Rectangle{image.Rect(30, 30, 40, 40)}
	e.ApplyMovement(Vec{}, blocks)

	overlay, ok := DebugOverlay(e).(Composite)
	require.True(t, ok)
	require.Len(t, overlay, 3)

	assert.Equal(t, blocks, overlay[0].(Outline).Rects)
	assert.Equal(t, []image.Rectangle{e.Bounds()}, overlay[1].(Outline).Rects)
	assert.Equal(t, []image.Rectangle{e.CollisionBox()}, overlay[2].(Outline).Rects)
}
