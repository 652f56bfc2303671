package editor

import (
	"image"
	"math"
)

// Layer is one editable buffer in the stack. The Document owns every layer;
// callers get pointers for reading and must mutate through Document or
// Engine so that history and the composite stay in sync.
type Layer struct {
	Name    string
	Pixels  *image.RGBA
	Opacity float64
	Visible bool
	history *History
}

func newLayer(name string, pixels *image.RGBA, undoLimit int) *Layer {
	return &Layer{
		Name:    name,
		Pixels:  pixels,
		Opacity: 1,
		Visible: true,
		history: NewHistory(undoLimit),
	}
}

// History exposes the layer's snapshot stacks.
func (l *Layer) History() *History {
	return l.history
}

// BeginGesture snapshots the current pixels so the next edit can be undone.
func (l *Layer) BeginGesture() {
	l.history.Begin(l.Pixels)
}

func (l *Layer) Undo() error {
	prev, err := l.history.Undo(l.Pixels)
	if err != nil {
		return err
	}
	l.Pixels = prev
	return nil
}

func (l *Layer) Redo() error {
	next, err := l.history.Redo(l.Pixels)
	if err != nil {
		return err
	}
	l.Pixels = next
	return nil
}

// clone deep-copies the layer. History is not carried over.
func (l *Layer) clone(name string) *Layer {
	cp := newLayer(name, CloneBuffer(l.Pixels), l.history.Limit())
	cp.Opacity = l.Opacity
	cp.Visible = l.Visible
	return cp
}

func clampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Max(0, math.Min(1, v))
}
