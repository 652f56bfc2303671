package editor

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

func FlipHorizontal(src *image.RGBA) *image.RGBA {
	return transform.FlipH(src)
}

func FlipVertical(src *image.RGBA) *image.RGBA {
	return transform.FlipV(src)
}

// RotateRight turns src a quarter clockwise about its centre. The buffer
// keeps its size; content rotated past the edges is clipped and uncovered
// areas are transparent. On a square buffer the turn is lossless.
func RotateRight(src *image.RGBA) *image.RGBA {
	return rotateQuarter(src, true)
}

// RotateLeft turns src a quarter counter-clockwise about its centre.
func RotateLeft(src *image.RGBA) *image.RGBA {
	return rotateQuarter(src, false)
}

// rotateQuarter maps destination pixels back onto the source in doubled
// coordinates so the centre stays on the half-pixel grid.
func rotateQuarter(src *image.RGBA, clockwise bool) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := NewBuffer(w, h)
	sum := (w - 1) + (h - 1)
	diff := (w - 1) - (h - 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx2, sy2 int
			if clockwise {
				sx2 = 2*y + diff
				sy2 = sum - 2*x
			} else {
				sx2 = sum - 2*y
				sy2 = 2*x - diff
			}
			sx, sy := floorHalf(sx2), floorHalf(sy2)
			if sx < 0 || sy < 0 || sx >= w || sy >= h {
				continue
			}
			si := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}
