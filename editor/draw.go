package editor

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Strokes are centred on pixel centres so odd widths land on whole pixels.
const pixelCenter = 0.5

// eraseThreshold is the stroke coverage from which the eraser clears a
// pixel. A binary footprint keeps erasing idempotent.
const eraseThreshold = 0x80

func strokeContext(buf *image.RGBA, c color.Color, width float64) *gg.Context {
	dc := gg.NewContextForRGBA(buf)
	dc.SetColor(c)
	dc.SetLineWidth(math.Max(1, width))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return dc
}

func center(p image.Point) (float64, float64) {
	return float64(p.X) + pixelCenter, float64(p.Y) + pixelCenter
}

// DrawLine strokes a round-capped segment from p0 to p1.
func DrawLine(buf *image.RGBA, p0, p1 image.Point, c color.Color, width float64) {
	dc := strokeContext(buf, c, width)
	x0, y0 := center(p0)
	x1, y1 := center(p1)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
}

// DrawRect strokes the outline of r. Both corners are treated as pixel
// positions on the outline.
func DrawRect(buf *image.RGBA, r image.Rectangle, c color.Color, width float64) {
	r = r.Canon()
	dc := strokeContext(buf, c, width)
	x, y := center(r.Min)
	dc.DrawRectangle(x, y, float64(r.Dx()), float64(r.Dy()))
	dc.Stroke()
}

// DrawEllipse strokes the ellipse inscribed in r.
func DrawEllipse(buf *image.RGBA, r image.Rectangle, c color.Color, width float64) {
	r = r.Canon()
	dc := strokeContext(buf, c, width)
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	x, y := center(r.Min)
	dc.DrawEllipse(x+rx, y+ry, rx, ry)
	dc.Stroke()
}

// EraseLine clears every pixel along the stroke footprint to fully
// transparent. Only the stroke's bounding box is rasterized.
func EraseLine(buf *image.RGBA, p0, p1 image.Point, width float64) {
	width = math.Max(1, width)
	pad := int(math.Ceil(width/2)) + 1
	area := image.Rect(
		min(p0.X, p1.X)-pad, min(p0.Y, p1.Y)-pad,
		max(p0.X, p1.X)+pad+1, max(p0.Y, p1.Y)+pad+1,
	).Intersect(buf.Bounds())
	if area.Empty() {
		return
	}
	dc := gg.NewContext(area.Dx(), area.Dy())
	dc.SetColor(color.White)
	dc.SetLineWidth(width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	x0, y0 := center(p0.Sub(area.Min))
	x1, y1 := center(p1.Sub(area.Min))
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
	footprint := dc.AsMask()
	for y := 0; y < area.Dy(); y++ {
		for x := 0; x < area.Dx(); x++ {
			if footprint.AlphaAt(x, y).A >= eraseThreshold {
				clearPixel(buf, area.Min.X+x, area.Min.Y+y)
			}
		}
	}
}

// DrawShape strokes the primitive of a shape tool from anchor a to b.
// Other tools draw nothing.
func DrawShape(buf *image.RGBA, tool ToolKind, a, b image.Point, c color.Color, width float64) {
	switch tool {
	case ToolLine:
		DrawLine(buf, a, b, c, width)
	case ToolRectangle:
		DrawRect(buf, shapeRect(a, b), c, width)
	case ToolCircle:
		DrawEllipse(buf, shapeRect(a, b), c, width)
	}
}

// shapeRect is the rectangle spanned by two corner points, both inclusive.
func shapeRect(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon()
}
