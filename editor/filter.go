package editor

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
)

type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterGrayscale
	FilterInvert
)

func (f FilterKind) String() string {
	switch f {
	case FilterGrayscale:
		return "Grayscale"
	case FilterInvert:
		return "Invert"
	default:
		return "None"
	}
}

// Grayscale replaces each pixel's color with its luminance
// (11R + 16G + 5B) / 32. Pixels that are already gray come out unchanged.
// Alpha is preserved; premultiplied channels stay premultiplied because the
// weights sum to one.
func Grayscale(src image.Image) *image.RGBA {
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		g := uint8((uint32(c.R)*11 + uint32(c.G)*16 + uint32(c.B)*5) / 32)
		return color.RGBA{R: g, G: g, B: g, A: c.A}
	})
}

// Invert inverts each pixel's unpremultiplied color and keeps its alpha.
// Fully transparent pixels stay transparent.
func Invert(src image.Image) *image.RGBA {
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		if c.A == 0 {
			return c
		}
		a := uint32(c.A)
		inv := func(v uint8) uint8 {
			u := min(uint32(v)*0xff/a, 0xff)
			return uint8((0xff - u) * a / 0xff)
		}
		return color.RGBA{R: inv(c.R), G: inv(c.G), B: inv(c.B), A: c.A}
	})
}

// ApplyFilter returns the filtered copy of src for kind.
func ApplyFilter(kind FilterKind, src *image.RGBA) *image.RGBA {
	switch kind {
	case FilterGrayscale:
		return Grayscale(src)
	case FilterInvert:
		return Invert(src)
	}
	return CloneBuffer(src)
}
