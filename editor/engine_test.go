package editor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(w, h int) (*Document, *Engine) {
	doc := NewBlankDocument(w, h, 0)
	e := NewEngine(doc, boxLayout{})
	return doc, e
}

func drag(e *Engine, pts ...image.Point) {
	e.Press(pts[0], true)
	for _, p := range pts[1:] {
		e.Move(p, true)
	}
	e.Release(pts[len(pts)-1], true)
}

func TestPaintStroke(t *testing.T) {
	doc := NewDocument(100, 100, 0)
	e := NewEngine(doc, boxLayout{})
	e.SetColor(red)
	e.SetWidth(4)

	drag(e, image.Pt(10, 10), image.Pt(10, 50))

	px := doc.ActiveLayer().Pixels
	for y := 14; y <= 46; y += 8 {
		assert.Equal(t, red, px.RGBAAt(10, y), "layer y=%d", y)
		assert.Equal(t, red, doc.Composite().RGBAAt(10, y), "composite y=%d", y)
	}
	assert.Zero(t, px.RGBAAt(40, 30).A)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, doc.Composite().RGBAAt(40, 30))
	assert.Equal(t, 1, doc.ActiveLayer().History().UndoLen())
	assert.False(t, e.Pressed())
}

func TestStrokeUndoRedoInverse(t *testing.T) {
	doc, e := newTestEngine(40, 40)
	Fill(doc.ActiveLayer().Pixels, opaque)
	before := CloneBuffer(doc.ActiveLayer().Pixels)

	e.SetColor(red)
	drag(e, image.Pt(2, 2), image.Pt(30, 8), image.Pt(12, 35))
	e.SetTool(ToolEraser)
	drag(e, image.Pt(0, 20), image.Pt(39, 20))
	after := CloneBuffer(doc.ActiveLayer().Pixels)
	require.False(t, BuffersEqual(before, after))

	require.NoError(t, doc.Undo())
	require.NoError(t, doc.Undo())
	assert.True(t, BuffersEqual(before, doc.ActiveLayer().Pixels))

	require.NoError(t, doc.Redo())
	require.NoError(t, doc.Redo())
	assert.True(t, BuffersEqual(after, doc.ActiveLayer().Pixels))
}

func TestUndoBound(t *testing.T) {
	doc, e := newTestEngine(30, 10)
	e.SetWidth(1)
	var afterFirst *image.RGBA
	for i := 0; i < DefaultUndoLimit+1; i++ {
		drag(e, image.Pt(i, 0), image.Pt(i, 5))
		if i == 0 {
			afterFirst = CloneBuffer(doc.ActiveLayer().Pixels)
		}
	}
	for i := 0; i < DefaultUndoLimit; i++ {
		require.NoError(t, doc.Undo(), "undo %d", i+1)
	}
	assert.True(t, BuffersEqual(afterFirst, doc.ActiveLayer().Pixels))
	assert.ErrorIs(t, doc.Undo(), ErrNothingToUndo)
}

func TestOutsideEventsIgnored(t *testing.T) {
	doc, e := newTestEngine(20, 20)
	e.Press(image.Point{}, false)
	assert.False(t, e.Pressed())
	assert.False(t, doc.ActiveLayer().History().CanUndo())

	e.Press(image.Pt(2, 2), true)
	e.Move(image.Point{}, false)
	e.Move(image.Pt(2, 15), true)
	e.Release(image.Point{}, false)
	assert.False(t, e.Pressed())
	assert.NotZero(t, doc.ActiveLayer().Pixels.RGBAAt(2, 10).A)
	assert.Zero(t, doc.ActiveLayer().Pixels.RGBAAt(15, 10).A)
}

func TestShapeCommitOnRelease(t *testing.T) {
	for _, tool := range []ToolKind{ToolLine, ToolRectangle, ToolCircle} {
		doc, e := newTestEngine(40, 40)
		e.SetTool(tool)
		e.Press(image.Pt(5, 5), true)
		e.Move(image.Pt(30, 30), true)
		assert.True(t, BuffersEqual(NewBuffer(40, 40), doc.ActiveLayer().Pixels), "%v draws nothing on move", tool)

		pv := e.Preview()
		assert.True(t, pv.Active)
		assert.Equal(t, image.Pt(5, 5), pv.Anchor)
		assert.Equal(t, image.Pt(30, 30), pv.Current)

		e.Release(image.Pt(30, 30), true)
		assert.False(t, BuffersEqual(NewBuffer(40, 40), doc.ActiveLayer().Pixels), "%v commits", tool)
		assert.Equal(t, 1, doc.ActiveLayer().History().UndoLen())
	}
}

func TestShapeReleasedOutsideIsCancelled(t *testing.T) {
	doc, e := newTestEngine(40, 40)
	e.SetTool(ToolRectangle)
	e.Press(image.Pt(5, 5), true)
	e.Move(image.Pt(30, 30), true)
	e.Release(image.Point{}, false)

	assert.False(t, e.Pressed())
	assert.True(t, BuffersEqual(NewBuffer(40, 40), doc.ActiveLayer().Pixels))
	// the snapshot taken on press stays valid
	require.Equal(t, 1, doc.ActiveLayer().History().UndoLen())
	assert.NoError(t, doc.Undo())
}

func TestRectSelect(t *testing.T) {
	_, e := newTestEngine(100, 100)
	e.SetTool(ToolRectSelect)
	drag(e, image.Pt(50, 50), image.Pt(30, 40), image.Pt(10, 10))

	sel := e.Selection()
	assert.Equal(t, SelectRect, sel.Kind)
	assert.Equal(t, image.Rect(10, 10, 50, 50), sel.Rect)
	assert.Equal(t, image.Pt(10, 10), e.Anchor())

	// a click without dragging leaves nothing selected
	drag(e, image.Pt(70, 70))
	assert.False(t, e.Selection().Active())
}

func TestLassoSelect(t *testing.T) {
	_, e := newTestEngine(100, 100)
	e.SetTool(ToolLassoSelect)
	e.Press(image.Pt(10, 10), true)
	e.Move(image.Pt(60, 10), true)
	e.Move(image.Point{}, false)
	e.Move(image.Pt(10, 60), true)
	assert.Len(t, e.Preview().Points, 3)
	e.Release(image.Pt(10, 60), true)

	sel := e.Selection()
	assert.Equal(t, SelectLasso, sel.Kind)
	assert.Equal(t, []image.Point{{X: 10, Y: 10}, {X: 60, Y: 10}, {X: 10, Y: 60}}, sel.Points)
	assert.True(t, sel.Active())
}

func TestSelectionSurvivesToolSwitch(t *testing.T) {
	_, e := newTestEngine(50, 50)
	e.SetTool(ToolRectSelect)
	drag(e, image.Pt(5, 5), image.Pt(20, 20))
	e.SetTool(ToolBrush)
	assert.True(t, e.Selection().Active())
}

func TestSelectionClearedWhenLayerInactive(t *testing.T) {
	doc, e := newTestEngine(50, 50)
	e.SetTool(ToolRectSelect)
	drag(e, image.Pt(5, 5), image.Pt(20, 20))
	doc.AddLayer()
	assert.False(t, e.Selection().Active())
	doc.ActivateLayer(0)
	assert.False(t, e.Selection().Active())
}

func TestTextItems(t *testing.T) {
	doc, e := newTestEngine(100, 100)
	e.SetPrompt(promptWith("hi"))
	e.SetColor(blue)
	e.SetTool(ToolText)

	drag(e, image.Pt(5, 5))
	items := e.TextItems()
	require.Len(t, items, 1)
	assert.Equal(t, image.Rect(5, 5, 25, 15), items[0].Bounds)
	assert.True(t, items[0].Selected)
	assert.Zero(t, doc.ActiveLayer().Pixels.RGBAAt(10, 10).A, "not rasterized yet")

	// drag the item by grabbing it inside its box
	drag(e, image.Pt(10, 10), image.Pt(20, 15))
	require.Len(t, e.TextItems(), 1)
	assert.Equal(t, image.Pt(15, 10), items[0].Position)
	assert.Equal(t, image.Rect(15, 10, 35, 20), items[0].Bounds)

	e.SetTool(ToolBrush)
	assert.Empty(t, e.TextItems())
	px := doc.ActiveLayer().Pixels
	assert.Equal(t, blue, px.RGBAAt(20, 12))
	assert.Zero(t, px.RGBAAt(10, 7).A)
	assert.Equal(t, 1, doc.ActiveLayer().History().UndoLen())
}

func TestTextHitPrefersNewest(t *testing.T) {
	_, e := newTestEngine(100, 100)
	e.SetPrompt(promptWith("abc"))
	e.SetTool(ToolText)
	drag(e, image.Pt(10, 10))
	drag(e, image.Pt(50, 50))
	drag(e, image.Pt(35, 5))
	e.SetPrompt(nil)
	require.Len(t, e.TextItems(), 3)
	first, second := e.TextItems()[0], e.TextItems()[1]

	// (36,14) lies in both the first and the third item
	drag(e, image.Pt(36, 14), image.Pt(36, 24))
	assert.Equal(t, image.Pt(10, 10), first.Position)
	assert.Equal(t, image.Pt(50, 50), second.Position)
	assert.Equal(t, image.Pt(35, 15), e.TextItems()[2].Position)
	assert.True(t, e.TextItems()[2].Selected)
	assert.False(t, first.Selected)
}

func TestTextPromptCancelled(t *testing.T) {
	_, e := newTestEngine(40, 40)
	e.SetPrompt(func(image.Point) (string, bool) { return "", false })
	e.SetTool(ToolText)
	drag(e, image.Pt(5, 5))
	assert.Empty(t, e.TextItems())
	assert.False(t, e.CommitText())
}

func TestDiscardText(t *testing.T) {
	doc, e := newTestEngine(40, 40)
	e.SetPrompt(promptWith("x"))
	e.SetTool(ToolText)
	drag(e, image.Pt(5, 5))
	e.DiscardText()
	e.SetTool(ToolBrush)
	assert.False(t, doc.ActiveLayer().History().CanUndo())
}

func TestToolNames(t *testing.T) {
	for k := ToolBrush; k <= ToolText; k++ {
		got, ok := ParseTool(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseTool("airbrush")
	assert.False(t, ok)
	assert.True(t, ToolEraser.Freehand())
	assert.True(t, ToolCircle.Shape())
	assert.True(t, ToolLassoSelect.Selects())
	assert.False(t, ToolText.Selects())
}
