package main

func (m *model) undo() {
	if m.penDown {
		return
	}
	m.setStatus(m.ctrl.Undo())
}

func (m *model) redo() {
	if m.penDown {
		return
	}
	m.setStatus(m.ctrl.Redo())
}

// historyDepth is shown in the status line as undo/redo counts for the
// active layer.
func (m *model) historyDepth() (int, int) {
	h := m.ctrl.Document().ActiveLayer().History()
	return h.UndoLen(), h.RedoLen()
}
