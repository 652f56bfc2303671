package editor

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// marchingAnts is the dash pattern of selection outlines.
var marchingAnts = []float64{4, 4}

var (
	antsLight = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	antsDark  = color.RGBA{A: 0xff}
)

// Frame is Display with the in-progress gesture and the current selection
// outlined on top. The returned buffer is the caller's when an overlay was
// drawn, otherwise it is shared with Display.
func (c *Controller) Frame() *image.RGBA {
	out := c.Display()
	pv := c.engine.Preview()
	sel := c.engine.Selection()
	shape := pv.Active && pv.Tool.Shape()
	selecting := pv.Active && pv.Tool.Selects()
	if !shape && !selecting && !sel.Active() {
		return out
	}

	out = CloneBuffer(out)
	switch {
	case shape:
		DrawShape(out, pv.Tool, pv.Anchor, pv.Current, c.engine.Color(), c.engine.Width())
	case selecting && pv.Tool == ToolRectSelect:
		outlineRect(out, shapeRect(pv.Anchor, pv.Current))
	case selecting:
		outlinePath(out, pv.Points, false)
	}
	if !selecting {
		switch sel.Kind {
		case SelectRect:
			outlineRect(out, sel.Rect)
		case SelectLasso:
			outlinePath(out, sel.Points, true)
		}
	}
	return out
}

func antsContext(buf *image.RGBA) *gg.Context {
	dc := gg.NewContextForRGBA(buf)
	dc.SetLineWidth(1)
	return dc
}

// strokeAnts draws the current path twice, light then dark with offset dashes,
// so the outline shows on any background.
func strokeAnts(dc *gg.Context) {
	dc.SetColor(antsLight)
	dc.SetDash()
	dc.StrokePreserve()
	dc.SetColor(antsDark)
	dc.SetDash(marchingAnts...)
	dc.Stroke()
}

func outlineRect(buf *image.RGBA, r image.Rectangle) {
	if r.Empty() {
		return
	}
	dc := antsContext(buf)
	x, y := center(r.Min)
	dc.DrawRectangle(x, y, float64(r.Dx()-1), float64(r.Dy()-1))
	strokeAnts(dc)
}

func outlinePath(buf *image.RGBA, pts []image.Point, closed bool) {
	if len(pts) < 2 {
		return
	}
	dc := antsContext(buf)
	for i, p := range pts {
		x, y := center(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	if closed {
		dc.ClosePath()
	}
	strokeAnts(dc)
}
