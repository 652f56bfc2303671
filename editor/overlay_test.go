package editor

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
)

func TestFrameWithoutOverlaySharesComposite(t *testing.T) {
	c := newTestController()
	assert.Same(t, c.Document().Composite(), c.Frame())
}

func TestFrameShapePreview(t *testing.T) {
	c := newTestController()
	c.SetTool(ToolLine)
	c.SetBrushColor(red)
	c.Press(gg.Point{X: 10, Y: 50})
	c.Move(gg.Point{X: 90, Y: 50})

	frame := c.Frame()
	assert.Equal(t, red, frame.RGBAAt(50, 50))
	assert.Zero(t, c.Document().ActiveLayer().Pixels.RGBAAt(50, 50).A)

	c.Release(gg.Point{X: 90, Y: 50})
	assert.Equal(t, red, c.Document().ActiveLayer().Pixels.RGBAAt(50, 50))
}

func TestFrameOutlinesSelection(t *testing.T) {
	c := newTestController()
	c.SetTool(ToolRectSelect)
	gesture(c, gg.Point{X: 20, Y: 20}, gg.Point{X: 60, Y: 60})
	a := assert.New(t)
	a.True(c.Engine().Selection().Active())

	frame := c.Frame()
	composite := c.Document().Composite()
	changed := 0
	for x := 20; x < 60; x++ {
		if frame.RGBAAt(x, 20) != composite.RGBAAt(x, 20) {
			changed++
		}
	}
	a.Positive(changed)
	a.Equal(composite.RGBAAt(40, 40), frame.RGBAAt(40, 40))
	a.Equal(image.Pt(100, 100), frame.Bounds().Size())
}
