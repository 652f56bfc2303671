package editor

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller {
	return NewController(Options{Width: 100, Height: 100, Layout: boxLayout{}})
}

func gesture(c *Controller, pts ...gg.Point) {
	c.Press(pts[0])
	for _, p := range pts[1:] {
		c.Move(p)
	}
	c.Release(pts[len(pts)-1])
}

func TestControllerRemoveLayerGuard(t *testing.T) {
	c := newTestController()
	require.Equal(t, 2, c.Document().LayerCount())

	assert.Equal(t, "Layer removed, active: Background", c.RemoveLayer())
	assert.Equal(t, "Need at least one layer.", c.RemoveLayer())
	assert.Equal(t, 1, c.Document().LayerCount())
}

func TestControllerLayerStatus(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "Added Layer 2", c.AddLayer())
	assert.Equal(t, "Active layer: Background", c.ActivateLayer(0))
	assert.Empty(t, c.ActivateLayer(7))
	assert.Equal(t, "Cannot move Background", c.MoveLayer(-1))
	assert.Equal(t, "Layer name cannot be empty", c.RenameLayer(""))
	assert.Equal(t, "Renamed Background to Paper", c.RenameLayer("Paper"))
	assert.Equal(t, "Paper opacity: 50%", c.SetLayerOpacity(0.5))
	assert.Equal(t, "Paper hidden", c.SetLayerVisible(false))
}

func TestControllerUndoStatus(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "Nothing to undo", c.Undo())
	assert.Equal(t, "Nothing to redo", c.Redo())

	c.SetTool(ToolBrush)
	gesture(c, gg.Point{X: 10, Y: 10}, gg.Point{X: 40, Y: 10})
	assert.Equal(t, "Undo on Layer 1", c.Undo())
	assert.Equal(t, "Redo on Layer 1", c.Redo())
}

func TestControllerCutPaste(t *testing.T) {
	c := newTestController()
	c.OpenImageAsActiveLayer(FilledBuffer(100, 100, red), "red.png")
	c.SetTool(ToolRectSelect)
	gesture(c, gg.Point{X: 10, Y: 10}, gg.Point{X: 30, Y: 30})

	assert.Equal(t, "Copied 20x20", c.Copy())
	assert.Equal(t, "Cut 20x20", c.Cut())
	px := c.Document().ActiveLayer().Pixels
	assert.Zero(t, px.RGBAAt(15, 15).A)
	assert.Equal(t, red, px.RGBAAt(5, 5))

	assert.Equal(t, "Pasted at 10,10", c.Paste())
	assert.Equal(t, red, c.Document().ActiveLayer().Pixels.RGBAAt(15, 15))
	assert.Equal(t, 2, c.Document().ActiveLayer().History().UndoLen())
}

func TestControllerNothingToCopy(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "Nothing to copy", c.Copy())
	assert.Equal(t, "Nothing to cut", c.Cut())
	assert.Equal(t, "Clipboard is empty", c.Paste())
	assert.Equal(t, 0, c.Document().ActiveLayer().History().UndoLen())
}

func TestControllerFilterPreview(t *testing.T) {
	c := newTestController()
	c.OpenImageAsActiveLayer(gradient(100, 100), "g.png")
	before := CloneBuffer(c.Document().ActiveLayer().Pixels)

	c.PreviewInvert()
	assert.Equal(t, FilterInvert, c.PreviewActive())
	assert.Equal(t, uint8(0xff), c.Display().RGBAAt(0, 0).R)
	assert.True(t, BuffersEqual(before, c.Document().ActiveLayer().Pixels))
	assert.Equal(t, 0, c.Document().ActiveLayer().History().UndoLen())

	assert.Equal(t, "Preview cancelled", c.CancelPreview())
	assert.Equal(t, FilterNone, c.PreviewActive())
	assert.Zero(t, c.Display().RGBAAt(0, 0).R)

	assert.Equal(t, "Invert applied to Layer 1", c.InvertColors())
	assert.False(t, BuffersEqual(before, c.Document().ActiveLayer().Pixels))
	c.Undo()
	assert.True(t, BuffersEqual(before, c.Document().ActiveLayer().Pixels))
}

func TestControllerOpenGarbage(t *testing.T) {
	c := newTestController()
	c.SetTool(ToolBrush)
	gesture(c, gg.Point{X: 10, Y: 10}, gg.Point{X: 40, Y: 10})
	before := CloneBuffer(c.Document().ActiveLayer().Pixels)

	status := c.OpenImage([]byte("definitely not an image"), "junk.png")
	assert.Contains(t, status, "Could not open image")
	assert.True(t, BuffersEqual(before, c.Document().ActiveLayer().Pixels))
	assert.Equal(t, 1, c.Document().ActiveLayer().History().UndoLen())
}

func TestControllerOpenResetsHistory(t *testing.T) {
	c := newTestController()
	c.SetTool(ToolBrush)
	gesture(c, gg.Point{X: 10, Y: 10}, gg.Point{X: 40, Y: 10})

	data, err := Codec{}.Encode(gradient(30, 20), FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "g.png loaded into Layer 1", c.OpenImage(data, "g.png"))
	l := c.Document().ActiveLayer()
	assert.Equal(t, image.Pt(100, 100), l.Pixels.Bounds().Size())
	assert.False(t, l.History().CanUndo())
}

func TestControllerZoom(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "Zoom: 1.1x", c.ZoomIn())
	assert.Equal(t, "Invalid zoom", c.SetZoom(0))
	for i := 0; i < 60; i++ {
		c.ZoomIn()
	}
	assert.Equal(t, MaxZoom, c.Viewport().Zoom)
	for i := 0; i < 60; i++ {
		c.ZoomOut()
	}
	assert.Equal(t, MinZoom, c.Viewport().Zoom)
}

func TestControllerZoomedInput(t *testing.T) {
	c := newTestController()
	c.SetZoom(2)
	c.Resize(image.Pt(200, 200))
	c.SetTool(ToolRectSelect)
	gesture(c, gg.Point{X: 20, Y: 20}, gg.Point{X: 60, Y: 80})
	assert.Equal(t, image.Rect(10, 10, 30, 40), c.Engine().Selection().Rect)
}

func TestControllerSaveComposite(t *testing.T) {
	c := newTestController()
	data, status := c.SaveComposite(FormatPNG)
	require.NotEmpty(t, data)
	assert.Equal(t, "Composite encoded as png", status)

	got, err := Codec{}.Decode(data)
	require.NoError(t, err)
	assert.True(t, BuffersEqual(c.Document().Composite(), got))
}

func TestControllerTextCommittedBeforeLayerChange(t *testing.T) {
	c := newTestController()
	c.Engine().SetPrompt(promptWith("hi"))
	c.SetTool(ToolText)
	gesture(c, gg.Point{X: 5, Y: 5})
	require.Len(t, c.Engine().TextItems(), 1)
	assert.NotZero(t, c.Display().RGBAAt(6, 6).A)

	c.AddLayer()
	assert.Empty(t, c.Engine().TextItems())
	assert.Equal(t, 1, c.Document().Layer(1).History().UndoLen())
}

func TestControllerPendingStateCommands(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "Nothing to commit", c.CommitText())
	assert.Empty(t, c.DiscardText())
	assert.Empty(t, c.ClearSelection())

	c.Engine().SetPrompt(promptWith("hi"))
	c.SetTool(ToolText)
	gesture(c, gg.Point{X: 5, Y: 5})
	assert.True(t, c.TextAt(gg.Point{X: 10, Y: 8}))
	assert.False(t, c.TextAt(gg.Point{X: 60, Y: 60}))
	assert.Equal(t, "Text discarded", c.DiscardText())

	gesture(c, gg.Point{X: 5, Y: 5})
	assert.Equal(t, "Text committed to Layer 1", c.CommitText())

	c.SetTool(ToolRectSelect)
	gesture(c, gg.Point{X: 10, Y: 10}, gg.Point{X: 20, Y: 20})
	assert.Equal(t, "Selection cleared", c.ClearSelection())
	assert.False(t, c.Engine().Selection().Active())
}

func TestControllerSelectionDroppedOnLayerSwitch(t *testing.T) {
	c := newTestController()
	c.OpenImageAsActiveLayer(FilledBuffer(100, 100, red), "red.png")
	c.SetTool(ToolRectSelect)
	top := c.Document().ActiveIndex()

	gesture(c, gg.Point{X: 5, Y: 5}, gg.Point{X: 20, Y: 20})
	c.ActivateLayer(top)
	assert.Equal(t, "Copied 15x15", c.Copy())

	c.ActivateLayer(0)
	c.ActivateLayer(top)
	assert.Equal(t, "Nothing to copy", c.Copy())
	assert.Equal(t, "Nothing to cut", c.Cut())
}

func TestControllerSelectionDroppedByLayerCommands(t *testing.T) {
	data, err := Codec{}.Encode(gradient(10, 10), FormatPNG)
	require.NoError(t, err)

	for name, run := range map[string]func(c *Controller){
		"add":       func(c *Controller) { c.AddLayer() },
		"duplicate": func(c *Controller) { c.DuplicateLayer() },
		"remove":    func(c *Controller) { c.RemoveLayer() },
		"import":    func(c *Controller) { c.ImportImage(data, "g.png") },
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestController()
			c.SetTool(ToolRectSelect)
			gesture(c, gg.Point{X: 5, Y: 5}, gg.Point{X: 20, Y: 20})
			require.True(t, c.Engine().Selection().Active())

			start := c.Document().ActiveLayer()
			run(c)
			// go back behind the controller's back
			for i := 0; i < c.Document().LayerCount(); i++ {
				if c.Document().Layer(i) == start {
					c.Document().ActivateLayer(i)
				}
			}
			assert.Equal(t, "Nothing to copy", c.Copy())
		})
	}
}

func TestControllerOpenCommitsPendingText(t *testing.T) {
	c := newTestController()
	c.Engine().SetPrompt(promptWith("hi"))
	c.SetTool(ToolText)
	gesture(c, gg.Point{X: 5, Y: 5})
	require.Len(t, c.Engine().TextItems(), 1)

	c.OpenImageAsActiveLayer(FilledBuffer(100, 100, red), "red.png")
	assert.Empty(t, c.Engine().TextItems())
	assert.Equal(t, red, c.Display().RGBAAt(6, 6))
	assert.False(t, c.Document().ActiveLayer().History().CanUndo())
}
