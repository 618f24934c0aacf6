package tilekit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// indexedSheet makes a cols x rows sheet of w x h frames where every pixel
// of frame i has red = i, so frames can be told apart with frameIndex.
func indexedSheet(cols, rows, w, h int) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, cols*w, rows*h))
	for y := 0; y < rows*h; y++ {
		for x := 0; x < cols*w; x++ {
			i := (y/h)*cols + x/w
			im.SetNRGBA(x, y, color.NRGBA{R: uint8(i), G: 0x80, A: 0xff})
		}
	}
	return im
}

// frameIndex reads back the index painted by indexedSheet
func frameIndex(im image.Image) int {
	r, _, _, _ := im.At(im.Bounds().Min.X, im.Bounds().Min.Y).RGBA()
	return int(r >> 8)
}

// solid returns a w x h image of one colour
func solid(w, h int, c color.Color) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, c)
		}
	}
	return im
}

func encodePNG(t *testing.T, im image.Image) []byte {
	buf := bytes.Buffer{}
	require.Nil(t, png.Encode(&buf, im))
	return buf.Bytes()
}

// rgba returns the colour at x,y in 8 bit per channel form
func rgba(im image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(im.At(x, y)).(color.RGBA)
}
