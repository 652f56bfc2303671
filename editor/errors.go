package editor

import "errors"

// User-facing no-op conditions. None of these leave the document modified.
var (
	ErrLastLayer      = errors.New("need at least one layer")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrNoSelection    = errors.New("no active selection")
	ErrNothingToCopy  = errors.New("nothing to copy")
	ErrClipboardEmpty = errors.New("clipboard is empty")
)

// Codec failures.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorrupt           = errors.New("corrupt image data")
)
