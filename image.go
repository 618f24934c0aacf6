package tilekit

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decodeImage decodes any registered image format (png, gif, jpeg, bmp, webp)
// into an NRGBA image with bounds starting at (0,0), so sub images of it
// can be taken safely.
func decodeImage(name string, data []byte) (*image.NRGBA, error) {
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: image %s: %v", ErrDecode, name, err)
	}
	return toNRGBA(im), nil
}

// toNRGBA copies `in` into a fresh NRGBA with bounds at (0,0)
func toNRGBA(in image.Image) *image.NRGBA {
	b := in.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), in, b.Min, draw.Src)
	return out
}

// slice cuts `in` into a row-major list of `w`x`h` blocks.
// Remainder pixels on the right / bottom edges are discarded.
func slice(in image.Image, w, h int) []image.Image {
	sheet, ok := in.(*image.NRGBA)
	if !ok || sheet.Bounds().Min != (image.Point{}) {
		sheet = toNRGBA(in)
	}

	cols := sheet.Bounds().Dx() / w
	rows := sheet.Bounds().Dy() / h

	out := make([]image.Image, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out = append(out, sheet.SubImage(image.Rect(x*w, y*h, (x+1)*w, (y+1)*h)))
		}
	}
	return out
}
