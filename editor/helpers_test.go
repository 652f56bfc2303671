package editor

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

var (
	red    = color.RGBA{R: 0xff, A: 0xff}
	blue   = color.RGBA{B: 0xff, A: 0xff}
	opaque = color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff}
)

// gradient fills a w×h buffer where each pixel encodes its coordinates.
func gradient(w, h int) *image.RGBA {
	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xff})
		}
	}
	return buf
}

// boxLayout sets every character in a 10×10 cell and renders text as a
// solid block, so tests do not depend on font metrics.
type boxLayout struct{}

func (boxLayout) Measure(text string, f Font) image.Rectangle {
	return image.Rect(0, 0, 10*len(text), 10)
}

func (l boxLayout) Render(text string, f Font, c color.Color, dst *image.RGBA, at image.Point) {
	r := l.Measure(text, f).Add(at)
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func promptWith(text string) TextPrompt {
	return func(image.Point) (string, bool) { return text, true }
}
