package editor

import "image"

// DefaultUndoLimit is the number of snapshots a layer keeps before the
// oldest is evicted.
const DefaultUndoLimit = 20

// History holds full-buffer snapshots for one layer. Entries on either stack
// are never written to while they sit there; the buffer popped by Undo or
// Redo becomes the layer's live buffer.
type History struct {
	undoStack []*image.RGBA
	redoStack []*image.RGBA
	limit     int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{limit: limit}
}

// Begin records a copy of current as the state to return to and drops any
// redo entries.
func (h *History) Begin(current *image.RGBA) {
	h.undoStack = append(h.undoStack, CloneBuffer(current))
	if len(h.undoStack) > h.limit {
		h.undoStack[0] = nil
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
}

// Undo parks current on the redo stack and returns the previous state.
func (h *History) Undo(current *image.RGBA) (*image.RGBA, error) {
	if len(h.undoStack) == 0 {
		return current, ErrNothingToUndo
	}
	h.redoStack = append(h.redoStack, current)
	last := len(h.undoStack) - 1
	prev := h.undoStack[last]
	h.undoStack[last] = nil
	h.undoStack = h.undoStack[:last]
	return prev, nil
}

// Redo parks current on the undo stack and returns the undone state.
func (h *History) Redo(current *image.RGBA) (*image.RGBA, error) {
	if len(h.redoStack) == 0 {
		return current, ErrNothingToRedo
	}
	h.undoStack = append(h.undoStack, current)
	if len(h.undoStack) > h.limit {
		h.undoStack[0] = nil
		h.undoStack = h.undoStack[1:]
	}
	last := len(h.redoStack) - 1
	next := h.redoStack[last]
	h.redoStack[last] = nil
	h.redoStack = h.redoStack[:last]
	return next, nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) UndoLen() int { return len(h.undoStack) }

func (h *History) RedoLen() int { return len(h.redoStack) }

func (h *History) Limit() int { return h.limit }

// Reset forgets every snapshot.
func (h *History) Reset() {
	h.undoStack = nil
	h.redoStack = nil
}
