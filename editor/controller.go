package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/fogleman/gg"
)

// Options configures a new Controller. Zero values fall back to defaults.
type Options struct {
	Width       int
	Height      int
	UndoLimit   int
	BrushColor  color.RGBA
	BrushWidth  float64
	JPEGQuality int
	Layout      TextLayout
	Prompt      TextPrompt
	Logger      *slog.Logger
}

// Controller is the command surface of the editor. It owns one document,
// its pointer engine, the viewport and the clipboard. Every command returns
// a status line for the shell. Calls must come from a single goroutine.
type Controller struct {
	doc      *Document
	engine   *Engine
	view     Viewport
	viewSize image.Point
	clip     Clipboard
	codec    Codec
	log      *slog.Logger

	previewKind FilterKind
	preview     *image.RGBA
}

func NewController(opts Options) *Controller {
	doc := NewDocument(opts.Width, opts.Height, opts.UndoLimit)
	c := &Controller{
		doc:    doc,
		engine: NewEngine(doc, opts.Layout),
		view:   NewViewport(),
		codec:  Codec{JPEGQuality: opts.JPEGQuality},
		log:    opts.Logger,
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.engine.SetLogger(c.log)
	c.engine.SetPrompt(opts.Prompt)
	if opts.BrushColor.A != 0 {
		c.engine.SetColor(opts.BrushColor)
	}
	if opts.BrushWidth > 0 {
		c.engine.SetWidth(opts.BrushWidth)
	}
	c.viewSize = doc.Size()
	c.view.Recenter(c.viewSize, doc.Size())
	return c
}

func (c *Controller) Document() *Document { return c.doc }

func (c *Controller) Engine() *Engine { return c.engine }

func (c *Controller) Viewport() Viewport { return c.view }

func (c *Controller) Clipboard() *Clipboard { return &c.clip }

// Display returns what the shell should show: the filter preview if one is
// pending, otherwise the composite with uncommitted text drawn on top.
func (c *Controller) Display() *image.RGBA {
	if c.preview != nil {
		return c.preview
	}
	if len(c.engine.TextItems()) == 0 {
		return c.doc.Composite()
	}
	out := CloneBuffer(c.doc.Composite())
	c.engine.RenderOverlay(out)
	return out
}

// edited drops a stale filter preview after any mutation.
func (c *Controller) edited() {
	c.previewKind = FilterNone
	c.preview = nil
}

func (c *Controller) activeName() string {
	return c.doc.ActiveLayer().Name
}

// Resize tells the controller the widget size; the canvas is recentered
// but no pixels change.
func (c *Controller) Resize(view image.Point) {
	c.viewSize = view
	c.view.Recenter(view, c.doc.Size())
}

func (c *Controller) toImage(p gg.Point) (image.Point, bool) {
	c.view.Recenter(c.viewSize, c.doc.Size())
	return c.view.WidgetToImage(p, c.doc.Size())
}

// Press, Move and Release take widget coordinates.
func (c *Controller) Press(p gg.Point) {
	c.edited()
	c.engine.Press(c.toImage(p))
}

func (c *Controller) Move(p gg.Point) {
	c.engine.Move(c.toImage(p))
}

func (c *Controller) Release(p gg.Point) {
	c.engine.Release(c.toImage(p))
}

// TextAt reports whether widget point p lands on a pending text item, in
// which case a text-tool press drags it instead of prompting.
func (c *Controller) TextAt(p gg.Point) bool {
	ip, ok := c.toImage(p)
	if !ok {
		return false
	}
	for _, t := range c.engine.TextItems() {
		if ip.In(t.Bounds) {
			return true
		}
	}
	return false
}

// OpenImage decodes data and loads it into the active layer. On failure
// the document is left untouched.
func (c *Controller) OpenImage(data []byte, name string) string {
	buf, err := c.codec.Decode(data)
	if err != nil {
		c.log.Warn("open failed", "file", name, "err", err)
		return fmt.Sprintf("Could not open image: %v", err)
	}
	return c.OpenImageAsActiveLayer(buf, name)
}

func (c *Controller) OpenImageAsActiveLayer(buf image.Image, name string) string {
	c.commitPending()
	c.engine.ClearSelection()
	c.doc.LoadIntoActiveLayer(buf)
	c.log.Info("image loaded", "file", name, "layer", c.activeName())
	return fmt.Sprintf("%s loaded into %s", name, c.activeName())
}

// ImportImage decodes data into a new layer on top of the stack.
func (c *Controller) ImportImage(data []byte, name string) string {
	buf, err := c.codec.Decode(data)
	if err != nil {
		c.log.Warn("import failed", "file", name, "err", err)
		return fmt.Sprintf("Could not open image: %v", err)
	}
	c.switchLayer(func() { c.doc.AddLayerFromImage(name, buf) })
	return fmt.Sprintf("Imported %s as %s", name, c.activeName())
}

// SaveComposite encodes the flattened image.
func (c *Controller) SaveComposite(f Format) ([]byte, string) {
	data, err := c.codec.Encode(c.doc.Composite(), f)
	if err != nil {
		c.log.Warn("save failed", "format", f, "err", err)
		return nil, fmt.Sprintf("Unable to save file: %v", err)
	}
	return data, fmt.Sprintf("Composite encoded as %s", f)
}

// commitPending rasterizes text items before the active layer changes.
func (c *Controller) commitPending() {
	c.edited()
	c.engine.CommitText()
}

// switchLayer runs fn, which may change the active layer. A selection never
// outlives the layer it was made on.
func (c *Controller) switchLayer(fn func()) {
	c.commitPending()
	before := c.doc.ActiveLayer()
	fn()
	if c.doc.ActiveLayer() != before {
		c.engine.ClearSelection()
	}
}

// CommitText rasterizes pending text items into the active layer.
func (c *Controller) CommitText() string {
	c.edited()
	if !c.engine.CommitText() {
		return "Nothing to commit"
	}
	return "Text committed to " + c.activeName()
}

func (c *Controller) DiscardText() string {
	if len(c.engine.TextItems()) == 0 {
		return ""
	}
	c.engine.DiscardText()
	return "Text discarded"
}

func (c *Controller) ClearSelection() string {
	if !c.engine.Selection().Active() {
		return ""
	}
	c.engine.ClearSelection()
	return "Selection cleared"
}

func (c *Controller) AddLayer() string {
	var l *Layer
	c.switchLayer(func() { l = c.doc.AddLayer() })
	c.log.Info("layer added", "layer", l.Name)
	return "Added " + l.Name
}

func (c *Controller) RemoveLayer() string {
	var removed *Layer
	var err error
	c.switchLayer(func() { removed, err = c.doc.RemoveLayer() })
	if errors.Is(err, ErrLastLayer) {
		return "Need at least one layer."
	}
	c.log.Info("layer removed", "layer", removed.Name)
	return "Layer removed, active: " + c.activeName()
}

func (c *Controller) DuplicateLayer() string {
	var l *Layer
	c.switchLayer(func() { l = c.doc.DuplicateLayer() })
	return "Duplicated as " + l.Name
}

func (c *Controller) ActivateLayer(i int) string {
	if i == c.doc.ActiveIndex() {
		return "Active layer: " + c.activeName()
	}
	if c.doc.Layer(i) == nil {
		return ""
	}
	c.switchLayer(func() { c.doc.ActivateLayer(i) })
	return "Active layer: " + c.activeName()
}

// MoveLayer moves the active layer up (+1) or down (-1) the stack.
func (c *Controller) MoveLayer(delta int) string {
	from := c.doc.ActiveIndex()
	if !c.doc.MoveLayer(from, from+delta) {
		return "Cannot move " + c.activeName()
	}
	c.edited()
	return fmt.Sprintf("Moved %s to position %d", c.activeName(), c.doc.ActiveIndex())
}

func (c *Controller) RenameLayer(name string) string {
	if name == "" {
		return "Layer name cannot be empty"
	}
	old := c.activeName()
	c.doc.RenameLayer(name)
	return fmt.Sprintf("Renamed %s to %s", old, name)
}

func (c *Controller) SetLayerOpacity(v float64) string {
	c.edited()
	got := c.doc.SetLayerOpacity(v)
	return fmt.Sprintf("%s opacity: %d%%", c.activeName(), int(got*100+0.5))
}

func (c *Controller) SetLayerVisible(visible bool) string {
	c.edited()
	c.doc.SetLayerVisible(visible)
	if visible {
		return c.activeName() + " shown"
	}
	return c.activeName() + " hidden"
}

func (c *Controller) Undo() string {
	c.commitPending()
	if err := c.doc.Undo(); err != nil {
		return "Nothing to undo"
	}
	return "Undo on " + c.activeName()
}

func (c *Controller) Redo() string {
	c.commitPending()
	if err := c.doc.Redo(); err != nil {
		return "Nothing to redo"
	}
	return "Redo on " + c.activeName()
}

func (c *Controller) SetTool(t ToolKind) string {
	if c.engine.Tool() == ToolText && t != ToolText {
		c.edited()
	}
	c.engine.SetTool(t)
	return t.String() + " tool"
}

func (c *Controller) SetBrushColor(col color.RGBA) string {
	c.engine.SetColor(col)
	return fmt.Sprintf("Color: #%02x%02x%02x", col.R, col.G, col.B)
}

func (c *Controller) SetBrushWidth(px float64) string {
	c.engine.SetWidth(px)
	return fmt.Sprintf("Brush size: %g", c.engine.Width())
}

func (c *Controller) SetZoom(f float64) string {
	if !c.view.SetZoom(f) {
		return "Invalid zoom"
	}
	c.view.Recenter(c.viewSize, c.doc.Size())
	return fmt.Sprintf("Zoom: %.1fx", c.view.Zoom)
}

func (c *Controller) ZoomIn() string {
	c.view.Step(1)
	return c.SetZoom(c.view.Zoom)
}

func (c *Controller) ZoomOut() string {
	c.view.Step(-1)
	return c.SetZoom(c.view.Zoom)
}

func (c *Controller) apply(status string, fn func(*image.RGBA) *image.RGBA) string {
	c.commitPending()
	c.doc.Apply(fn)
	return status
}

func (c *Controller) RotateLeft() string { return c.apply("Rotated left", RotateLeft) }

func (c *Controller) RotateRight() string { return c.apply("Rotated right", RotateRight) }

func (c *Controller) FlipHorizontal() string {
	return c.apply("Flipped horizontally", FlipHorizontal)
}

func (c *Controller) FlipVertical() string {
	return c.apply("Flipped vertically", FlipVertical)
}

// PreviewFilter shows kind applied to the active layer without touching
// the layer. The preview lasts until the next edit.
func (c *Controller) PreviewFilter(kind FilterKind) string {
	c.commitPending()
	idx := c.doc.ActiveIndex()
	c.preview = c.doc.compositeWith(idx, ApplyFilter(kind, c.doc.ActiveLayer().Pixels))
	c.previewKind = kind
	return fmt.Sprintf("Previewing %s on %s", kind, c.activeName())
}

// PreviewActive reports which filter is currently previewed.
func (c *Controller) PreviewActive() FilterKind { return c.previewKind }

func (c *Controller) CancelPreview() string {
	if c.preview == nil {
		return ""
	}
	c.edited()
	return "Preview cancelled"
}

func (c *Controller) Filter(kind FilterKind) string {
	return c.apply(fmt.Sprintf("%s applied to %s", kind, c.activeName()), func(b *image.RGBA) *image.RGBA {
		return ApplyFilter(kind, b)
	})
}

func (c *Controller) PreviewGrayscale() string { return c.PreviewFilter(FilterGrayscale) }

func (c *Controller) Grayscale() string { return c.Filter(FilterGrayscale) }

func (c *Controller) PreviewInvert() string { return c.PreviewFilter(FilterInvert) }

func (c *Controller) InvertColors() string { return c.Filter(FilterInvert) }

func (c *Controller) ClearActiveLayer() string {
	c.commitPending()
	c.doc.ClearActiveLayer()
	return c.activeName() + " cleared"
}

// Copy puts the selected pixels of the active layer on the clipboard.
func (c *Controller) Copy() string {
	n, err := c.copySelection()
	if err != nil {
		return "Nothing to copy"
	}
	return fmt.Sprintf("Copied %dx%d", n.X, n.Y)
}

func (c *Controller) copySelection() (image.Point, error) {
	sel := c.engine.Selection()
	buf, _, err := sel.Extract(c.doc.ActiveLayer().Pixels)
	if err != nil {
		return image.Point{}, err
	}
	c.clip.Set(buf)
	return buf.Bounds().Size(), nil
}

// Cut copies the selection, then clears its bounding rectangle.
func (c *Controller) Cut() string {
	c.commitPending()
	n, err := c.copySelection()
	if err != nil {
		return "Nothing to cut"
	}
	sel := c.engine.Selection()
	l := c.doc.ActiveLayer()
	l.BeginGesture()
	ClearRect(l.Pixels, sel.Bounds())
	c.doc.Recomposite()
	return fmt.Sprintf("Cut %dx%d", n.X, n.Y)
}

// Paste draws the clipboard at the selection's top-left corner, or at the
// last selection anchor when nothing is selected.
func (c *Controller) Paste() string {
	if c.clip.Empty() {
		return "Clipboard is empty"
	}
	c.commitPending()
	at := c.engine.Anchor()
	if sel := c.engine.Selection(); sel.Active() {
		at = sel.Bounds().Min
	}
	l := c.doc.ActiveLayer()
	l.BeginGesture()
	Blit(l.Pixels, c.clip.Get(), at)
	c.doc.Recomposite()
	return fmt.Sprintf("Pasted at %d,%d", at.X, at.Y)
}
