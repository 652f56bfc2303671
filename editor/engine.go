package editor

import (
	"image"
	"image/color"
	"io"
	"log/slog"
)

// TextPrompt asks the user for the content of a new text item placed at at.
// ok is false when the user cancels.
type TextPrompt func(at image.Point) (text string, ok bool)

// Preview describes the uncommitted overlay of an in-progress gesture, for
// the shell to draw on top of the composite.
type Preview struct {
	Tool    ToolKind
	Active  bool
	Anchor  image.Point
	Current image.Point
	Points  []image.Point
}

// Engine is the pointer state machine. All points it receives are already
// in image coordinates; ok=false marks a point that fell outside the image.
type Engine struct {
	doc    *Document
	layout TextLayout
	prompt TextPrompt
	log    *slog.Logger

	tool  ToolKind
	color color.RGBA
	width float64
	font  Font

	pressed bool
	start   image.Point
	last    image.Point

	selection      Selection
	selectionLayer *Layer
	lasso          []image.Point
	anchor         image.Point

	texts    []*TextItem
	dragging *TextItem
}

func NewEngine(doc *Document, layout TextLayout) *Engine {
	if layout == nil {
		layout = NewFontLayout()
	}
	return &Engine{
		doc:    doc,
		layout: layout,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		color:  color.RGBA{A: 0xff},
		width:  6,
		font:   DefaultFont,
	}
}

func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

func (e *Engine) SetPrompt(p TextPrompt) { e.prompt = p }

func (e *Engine) Tool() ToolKind { return e.tool }

func (e *Engine) Color() color.RGBA { return e.color }

func (e *Engine) Width() float64 { return e.width }

func (e *Engine) Font() Font { return e.font }

func (e *Engine) SetColor(c color.RGBA) { e.color = c }

func (e *Engine) SetFont(f Font) { e.font = f }

func (e *Engine) SetWidth(w float64) {
	if w >= 1 {
		e.width = w
	}
}

// SetTool switches tools. Pending text items are committed when leaving the
// Text tool. The selection survives a switch so it can still be copied.
func (e *Engine) SetTool(t ToolKind) {
	if t == e.tool {
		return
	}
	if e.tool == ToolText {
		e.CommitText()
	}
	e.pressed = false
	e.dragging = nil
	e.lasso = nil
	e.tool = t
}

// Selection returns the current selection, or an empty one when it does not
// belong to the active layer any more.
func (e *Engine) Selection() Selection {
	if e.selectionLayer != nil && e.selectionLayer != e.doc.ActiveLayer() {
		e.ClearSelection()
	}
	return e.selection
}

func (e *Engine) ClearSelection() {
	e.selection = Selection{}
	e.selectionLayer = nil
}

// Anchor is the last position a selection started from, used for pasting
// when no selection is active.
func (e *Engine) Anchor() image.Point { return e.anchor }

func (e *Engine) TextItems() []*TextItem { return e.texts }

func (e *Engine) Pressed() bool { return e.pressed }

// Press starts a gesture.
func (e *Engine) Press(p image.Point, ok bool) {
	if !ok || e.pressed {
		return
	}
	e.pressed = true
	e.start = p
	e.last = p

	switch e.tool {
	case ToolBrush, ToolEraser, ToolLine, ToolRectangle, ToolCircle:
		e.doc.ActiveLayer().BeginGesture()
		e.log.Debug("gesture started", "tool", e.tool, "at", p)
	case ToolRectSelect:
		e.ClearSelection()
		e.selection = RectSelection(image.Rectangle{Min: p, Max: p})
		e.selectionLayer = e.doc.ActiveLayer()
	case ToolLassoSelect:
		e.ClearSelection()
		e.lasso = []image.Point{p}
	case ToolText:
		e.pressText(p)
	}
}

func (e *Engine) pressText(p image.Point) {
	for _, t := range e.texts {
		t.Selected = false
	}
	for i := len(e.texts) - 1; i >= 0; i-- {
		t := e.texts[i]
		if p.In(t.Bounds) {
			t.Selected = true
			e.dragging = t
			return
		}
	}
	if e.prompt == nil {
		return
	}
	text, ok := e.prompt(p)
	if !ok || text == "" {
		return
	}
	item := &TextItem{
		Text:     text,
		Position: p,
		Font:     e.font,
		Color:    e.color,
		Bounds:   e.layout.Measure(text, e.font).Add(p),
		Selected: true,
	}
	e.texts = append(e.texts, item)
	e.dragging = item
}

// Move continues a gesture. Points outside the image are ignored.
func (e *Engine) Move(p image.Point, ok bool) {
	if !ok || !e.pressed {
		return
	}
	switch e.tool {
	case ToolBrush:
		l := e.doc.ActiveLayer()
		DrawLine(l.Pixels, e.last, p, e.color, e.width)
		e.doc.Recomposite()
	case ToolEraser:
		l := e.doc.ActiveLayer()
		EraseLine(l.Pixels, e.last, p, e.width)
		e.doc.Recomposite()
	case ToolRectSelect:
		e.selection = RectSelection(image.Rectangle{Min: e.start, Max: p})
	case ToolLassoSelect:
		e.lasso = append(e.lasso, p)
	case ToolText:
		if e.dragging != nil {
			e.dragging.translate(p.Sub(e.last))
		}
	}
	e.last = p
}

// Release ends a gesture. It always finalizes, even when p is outside the
// image; a shape released outside is not drawn.
func (e *Engine) Release(p image.Point, ok bool) {
	if !e.pressed {
		return
	}
	e.pressed = false

	switch e.tool {
	case ToolLine, ToolRectangle, ToolCircle:
		if ok {
			e.commitShape(e.start, p)
		} else {
			e.log.Debug("shape cancelled", "tool", e.tool)
		}
	case ToolRectSelect:
		if ok {
			e.selection = RectSelection(image.Rectangle{Min: e.start, Max: p})
		}
		e.finishSelection()
	case ToolLassoSelect:
		if ok && p != e.last {
			e.lasso = append(e.lasso, p)
		}
		e.selection = LassoSelection(e.lasso)
		e.lasso = nil
		e.finishSelection()
	case ToolText:
		e.dragging = nil
	}
	e.last = p
	e.doc.Recomposite()
	e.log.Debug("gesture finished", "tool", e.tool)
}

func (e *Engine) commitShape(a, b image.Point) {
	DrawShape(e.doc.ActiveLayer().Pixels, e.tool, a, b, e.color, e.width)
}

func (e *Engine) finishSelection() {
	if !e.selection.Active() {
		e.ClearSelection()
		return
	}
	e.selectionLayer = e.doc.ActiveLayer()
	e.anchor = e.selection.Bounds().Min
	e.log.Debug("selection", "bounds", e.selection.Bounds())
}

// Preview reports the live overlay for shape and selection gestures.
func (e *Engine) Preview() Preview {
	pv := Preview{Tool: e.tool, Active: e.pressed, Anchor: e.start, Current: e.last}
	if e.tool == ToolLassoSelect && e.pressed {
		pv.Points = append([]image.Point(nil), e.lasso...)
	}
	return pv
}

// CommitText rasterizes every pending text item into the active layer as a
// single undoable edit. It reports whether anything was committed.
func (e *Engine) CommitText() bool {
	if len(e.texts) == 0 {
		return false
	}
	l := e.doc.ActiveLayer()
	l.BeginGesture()
	for _, t := range e.texts {
		e.layout.Render(t.Text, t.Font, t.Color, l.Pixels, t.Position)
	}
	e.log.Debug("text committed", "items", len(e.texts), "layer", l.Name)
	e.texts = nil
	e.dragging = nil
	e.doc.Recomposite()
	return true
}

// DiscardText drops pending text items without drawing them.
func (e *Engine) DiscardText() {
	e.texts = nil
	e.dragging = nil
}

// RenderOverlay draws pending text items onto dst, which is normally a copy
// of the composite.
func (e *Engine) RenderOverlay(dst *image.RGBA) {
	for _, t := range e.texts {
		e.layout.Render(t.Text, t.Font, t.Color, dst, t.Position)
	}
}
