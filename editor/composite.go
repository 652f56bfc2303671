package editor

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Composite flattens layers bottom to top into a new buffer of the given
// size. Each layer is blended with source-over, its per-pixel alpha scaled by
// the layer opacity. Hidden layers are skipped. The layers are not modified.
func Composite(layers []*Layer, w, h int) *image.RGBA {
	out := NewBuffer(w, h)
	for _, l := range layers {
		compositeLayer(out, l.Pixels, l.Opacity, l.Visible)
	}
	return out
}

func compositeLayer(dst *image.RGBA, src *image.RGBA, opacity float64, visible bool) {
	if !visible || src == nil || opacity <= 0 {
		return
	}
	r := dst.Bounds().Intersect(src.Bounds())
	if opacity >= 1 {
		xdraw.Draw(dst, r, src, r.Min, xdraw.Over)
		return
	}
	a := uint8(math.Round(opacity * 255))
	mask := image.NewUniform(color.Alpha{A: a})
	xdraw.DrawMask(dst, r, src, r.Min, mask, image.Point{}, xdraw.Over)
}
