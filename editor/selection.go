package editor

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectRect
	SelectLasso
)

// Selection is a region in image coordinates. A rectangle selection's Max is
// exclusive; a lasso is a closed polygon through Points.
type Selection struct {
	Kind   SelectionKind
	Rect   image.Rectangle
	Points []image.Point
}

func RectSelection(r image.Rectangle) Selection {
	return Selection{Kind: SelectRect, Rect: r.Canon()}
}

func LassoSelection(points []image.Point) Selection {
	pts := make([]image.Point, len(points))
	copy(pts, points)
	return Selection{Kind: SelectLasso, Points: pts}
}

// Active reports whether the selection covers anything at all.
func (s Selection) Active() bool {
	switch s.Kind {
	case SelectRect:
		return !s.Rect.Empty()
	case SelectLasso:
		return len(s.Points) > 0
	}
	return false
}

// Bounds is the smallest rectangle containing the selection. For a lasso it
// includes the vertex pixels themselves.
func (s Selection) Bounds() image.Rectangle {
	switch s.Kind {
	case SelectRect:
		return s.Rect
	case SelectLasso:
		if len(s.Points) == 0 {
			return image.Rectangle{}
		}
		r := image.Rectangle{Min: s.Points[0], Max: s.Points[0].Add(image.Pt(1, 1))}
		for _, p := range s.Points[1:] {
			r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
		}
		return r
	}
	return image.Rectangle{}
}

// Mask returns an alpha mask the size of Bounds, fully opaque for pixels
// inside the selection and zero elsewhere. The lasso polygon is filled with
// gg and binarized at half coverage.
func (s Selection) Mask() *image.Alpha {
	b := s.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch s.Kind {
	case SelectRect:
		for i := range mask.Pix {
			mask.Pix[i] = 0xff
		}
	case SelectLasso:
		if len(s.Points) < 3 || b.Empty() {
			return mask
		}
		dc := gg.NewContext(b.Dx(), b.Dy())
		for i, p := range s.Points {
			x, y := center(p.Sub(b.Min))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetColor(color.White)
		dc.Fill()
		cover := dc.AsMask()
		for i, a := range cover.Pix {
			if a >= 0x80 {
				mask.Pix[i] = 0xff
			}
		}
	}
	return mask
}

// Extract copies the selected pixels of buf into a buffer sized to the
// selection bounds clipped to buf. Pixels outside a lasso are transparent.
func (s Selection) Extract(buf *image.RGBA) (*image.RGBA, image.Point, error) {
	if !s.Active() {
		return nil, image.Point{}, ErrNoSelection
	}
	b := s.Bounds()
	clipped := b.Intersect(buf.Bounds())
	if clipped.Empty() {
		return nil, image.Point{}, ErrNothingToCopy
	}
	out := SubBuffer(buf, clipped)
	if s.Kind == SelectLasso {
		mask := s.Mask()
		off := clipped.Min.Sub(b.Min)
		for y := 0; y < out.Bounds().Dy(); y++ {
			for x := 0; x < out.Bounds().Dx(); x++ {
				if mask.AlphaAt(x+off.X, y+off.Y).A == 0 {
					clearPixel(out, x, y)
				}
			}
		}
	}
	return out, clipped.Min, nil
}
