package editor

import "image"

// Clipboard holds the last copied region. Paste reads it without consuming
// it, so the same contents can be pasted repeatedly.
type Clipboard struct {
	buf *image.RGBA
}

func (c *Clipboard) Set(buf *image.RGBA) {
	c.buf = buf
}

// Get returns the clipboard contents. Callers must not modify the buffer.
func (c *Clipboard) Get() *image.RGBA {
	return c.buf
}

func (c *Clipboard) Empty() bool {
	return c.buf == nil || c.buf.Bounds().Empty()
}

func (c *Clipboard) Size() image.Point {
	if c.buf == nil {
		return image.Point{}
	}
	return c.buf.Bounds().Size()
}
