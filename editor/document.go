package editor

import (
	"fmt"
	"image"
	"image/color"
)

// Default canvas size for a fresh document.
const (
	DefaultWidth  = 1600
	DefaultHeight = 1200
)

// Document is the ordered layer stack (index 0 is the background) plus the
// cached composite. The active index always points at an existing layer.
type Document struct {
	width     int
	height    int
	layers    []*Layer
	active    int
	composite *image.RGBA
	undoLimit int
	created   int
}

// NewDocument starts with a white "Background" and a transparent "Layer 1"
// on top of it, the top layer active.
func NewDocument(w, h, undoLimit int) *Document {
	d := NewBlankDocument(w, h, undoLimit)
	Fill(d.layers[0].Pixels, color.White)
	d.layers[0].Name = "Background"
	d.AddLayer()
	return d
}

// NewBlankDocument returns a document with a single transparent layer.
func NewBlankDocument(w, h, undoLimit int) *Document {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if undoLimit <= 0 {
		undoLimit = DefaultUndoLimit
	}
	d := &Document{width: w, height: h, undoLimit: undoLimit}
	d.layers = []*Layer{newLayer("Layer 0", NewBuffer(w, h), undoLimit)}
	d.created = 1
	d.Recomposite()
	return d
}

func (d *Document) Size() image.Point { return image.Pt(d.width, d.height) }

func (d *Document) Bounds() image.Rectangle { return image.Rect(0, 0, d.width, d.height) }

func (d *Document) LayerCount() int { return len(d.layers) }

func (d *Document) ActiveIndex() int { return d.active }

// Layer returns the layer at index i, or nil when i is out of range.
func (d *Document) Layer(i int) *Layer {
	if i < 0 || i >= len(d.layers) {
		return nil
	}
	return d.layers[i]
}

// ActiveLayer returns the active layer, padded to canvas size if its buffer
// has shrunk below it.
func (d *Document) ActiveLayer() *Layer {
	if d.active < 0 || d.active >= len(d.layers) {
		return nil
	}
	l := d.layers[d.active]
	l.Pixels = EnsureSize(l.Pixels, d.width, d.height)
	return l
}

// Composite returns the cached flattened image. Callers must not modify it.
func (d *Document) Composite() *image.RGBA {
	return d.composite
}

// Recomposite rebuilds the cached composite from the layer stack.
func (d *Document) Recomposite() {
	for _, l := range d.layers {
		l.Pixels = EnsureSize(l.Pixels, d.width, d.height)
	}
	d.composite = Composite(d.layers, d.width, d.height)
}

// compositeWith flattens the stack as if layer i held buf instead of its
// own pixels. Nothing is cached.
func (d *Document) compositeWith(i int, buf *image.RGBA) *image.RGBA {
	out := NewBuffer(d.width, d.height)
	for j, l := range d.layers {
		px := l.Pixels
		if j == i {
			px = buf
		}
		compositeLayer(out, px, l.Opacity, l.Visible)
	}
	return out
}

// AddLayer appends a transparent canvas-sized layer and activates it.
func (d *Document) AddLayer() *Layer {
	l := newLayer(fmt.Sprintf("Layer %d", d.created), NewBuffer(d.width, d.height), d.undoLimit)
	d.created++
	return d.push(l)
}

// AddLayerFromImage appends a layer holding a copy of img fitted to the
// canvas, and activates it.
func (d *Document) AddLayerFromImage(name string, img image.Image) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", d.created)
	}
	d.created++
	return d.push(newLayer(name, FitToSize(img, d.width, d.height), d.undoLimit))
}

func (d *Document) push(l *Layer) *Layer {
	d.layers = append(d.layers, l)
	d.active = len(d.layers) - 1
	d.Recomposite()
	return l
}

// RemoveLayer drops the active layer and activates the new top layer.
func (d *Document) RemoveLayer() (*Layer, error) {
	if len(d.layers) <= 1 {
		return nil, ErrLastLayer
	}
	removed := d.layers[d.active]
	d.layers = append(d.layers[:d.active], d.layers[d.active+1:]...)
	d.active = len(d.layers) - 1
	d.Recomposite()
	return removed, nil
}

// DuplicateLayer appends a deep copy of the active layer with fresh
// history, and activates it.
func (d *Document) DuplicateLayer() *Layer {
	src := d.ActiveLayer()
	return d.push(src.clone(src.Name + " copy"))
}

// ActivateLayer makes layer i active. Out-of-range indices are ignored.
func (d *Document) ActivateLayer(i int) bool {
	if i < 0 || i >= len(d.layers) {
		return false
	}
	d.active = i
	return true
}

// MoveLayer moves the layer at from to position to, keeping the same layer
// active.
func (d *Document) MoveLayer(from, to int) bool {
	n := len(d.layers)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	activeLayer := d.layers[d.active]
	l := d.layers[from]
	d.layers = append(d.layers[:from], d.layers[from+1:]...)
	d.layers = append(d.layers[:to], append([]*Layer{l}, d.layers[to:]...)...)
	for i, cand := range d.layers {
		if cand == activeLayer {
			d.active = i
		}
	}
	d.Recomposite()
	return true
}

func (d *Document) RenameLayer(name string) {
	d.ActiveLayer().Name = name
}

func (d *Document) SetLayerOpacity(v float64) float64 {
	l := d.ActiveLayer()
	l.Opacity = clampOpacity(v)
	d.Recomposite()
	return l.Opacity
}

func (d *Document) SetLayerVisible(visible bool) {
	d.ActiveLayer().Visible = visible
	d.Recomposite()
}

// ClearActiveLayer makes the active layer fully transparent as one undoable
// edit.
func (d *Document) ClearActiveLayer() {
	l := d.ActiveLayer()
	l.BeginGesture()
	Fill(l.Pixels, color.Transparent)
	d.Recomposite()
}

// LoadIntoActiveLayer replaces the active layer's pixels with img fitted to
// the canvas. The layer's history is discarded, as the loaded image is a new
// starting point.
func (d *Document) LoadIntoActiveLayer(img image.Image) {
	l := d.ActiveLayer()
	l.Pixels = FitToSize(img, d.width, d.height)
	l.history.Reset()
	d.Recomposite()
}

// Undo reverts the active layer's last edit.
func (d *Document) Undo() error {
	if err := d.ActiveLayer().Undo(); err != nil {
		return err
	}
	d.Recomposite()
	return nil
}

// Redo reapplies the active layer's last undone edit.
func (d *Document) Redo() error {
	if err := d.ActiveLayer().Redo(); err != nil {
		return err
	}
	d.Recomposite()
	return nil
}

// Apply runs fn on the active layer as one undoable edit. fn returns the
// new buffer, which may be the one it was given.
func (d *Document) Apply(fn func(*image.RGBA) *image.RGBA) {
	l := d.ActiveLayer()
	l.BeginGesture()
	l.Pixels = FitToSize(fn(l.Pixels), d.width, d.height)
	d.Recomposite()
}
