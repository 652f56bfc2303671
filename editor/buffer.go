package editor

import (
	"bytes"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	xdraw "golang.org/x/image/draw"
)

// NewBuffer returns a fully transparent w×h buffer anchored at the origin.
func NewBuffer(w, h int) *image.RGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// FilledBuffer returns a w×h buffer with every pixel set to c.
func FilledBuffer(w, h int, c color.Color) *image.RGBA {
	buf := NewBuffer(w, h)
	Fill(buf, c)
	return buf
}

// Fill overwrites every pixel of buf with c.
func Fill(buf *image.RGBA, c color.Color) {
	xdraw.Draw(buf, buf.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// CloneBuffer returns a deep copy of buf with its origin moved to (0,0).
func CloneBuffer(buf image.Image) *image.RGBA {
	if buf == nil {
		return nil
	}
	cp := clone.AsRGBA(buf)
	if cp.Rect.Min != (image.Point{}) {
		cp.Rect = cp.Rect.Sub(cp.Rect.Min)
	}
	return cp
}

// EnsureSize returns buf if it is at least w×h. Otherwise it returns a new
// transparent w×h buffer with the old content copied to its top-left corner.
func EnsureSize(buf *image.RGBA, w, h int) *image.RGBA {
	if buf == nil {
		return NewBuffer(w, h)
	}
	b := buf.Bounds()
	if b.Dx() >= w && b.Dy() >= h {
		return buf
	}
	grown := NewBuffer(max(w, b.Dx()), max(h, b.Dy()))
	xdraw.Draw(grown, b.Sub(b.Min), buf, b.Min, xdraw.Src)
	return grown
}

// FitToSize pads or crops buf to exactly w×h, keeping the top-left anchor.
func FitToSize(buf image.Image, w, h int) *image.RGBA {
	out := NewBuffer(w, h)
	if buf == nil {
		return out
	}
	b := buf.Bounds()
	xdraw.Draw(out, out.Bounds(), buf, b.Min, xdraw.Src)
	return out
}

// SameSize reports whether two buffers have identical dimensions.
func SameSize(a, b image.Image) bool {
	return a.Bounds().Size() == b.Bounds().Size()
}

// BuffersEqual reports whether a and b have the same size and bytes.
func BuffersEqual(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !SameSize(a, b) {
		return false
	}
	w := a.Bounds().Dx() * 4
	for y := 0; y < a.Bounds().Dy(); y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		if !bytes.Equal(ra, rb) {
			return false
		}
	}
	return true
}

// SubBuffer copies the part of buf inside r (clipped to buf) into a new
// buffer anchored at the origin.
func SubBuffer(buf *image.RGBA, r image.Rectangle) *image.RGBA {
	r = r.Intersect(buf.Bounds())
	out := NewBuffer(r.Dx(), r.Dy())
	if r.Empty() {
		return out
	}
	xdraw.Draw(out, out.Bounds(), buf, r.Min, xdraw.Src)
	return out
}

// ClearRect makes every pixel of buf inside r fully transparent.
func ClearRect(buf *image.RGBA, r image.Rectangle) {
	r = r.Intersect(buf.Bounds())
	if r.Empty() {
		return
	}
	xdraw.Draw(buf, r, image.Transparent, image.Point{}, xdraw.Src)
}

// Blit composites src over dst with src's top-left at at.
func Blit(dst *image.RGBA, src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	xdraw.Draw(dst, r, src, sb.Min, xdraw.Over)
}

func clearPixel(buf *image.RGBA, x, y int) {
	i := buf.PixOffset(x, y)
	buf.Pix[i+0] = 0
	buf.Pix[i+1] = 0
	buf.Pix[i+2] = 0
	buf.Pix[i+3] = 0
}
