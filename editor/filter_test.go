package editor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrayscaleIdempotentOnGray(t *testing.T) {
	buf := NewBuffer(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(x*16 + y)
			buf.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	assert.True(t, BuffersEqual(buf, Grayscale(buf)))

	once := Grayscale(gradient(30, 30))
	assert.True(t, BuffersEqual(once, Grayscale(once)))
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	buf := NewBuffer(2, 1)
	buf.SetRGBA(0, 0, color.RGBA{R: 0x80, A: 0x80})
	g := Grayscale(buf).RGBAAt(0, 0)
	assert.Equal(t, uint8(0x80), g.A)
	assert.Equal(t, g.R, g.G)
	assert.Equal(t, g.G, g.B)
	assert.Equal(t, uint8(0x80*11/32), g.R)
	assert.Equal(t, color.RGBA{}, Grayscale(buf).RGBAAt(1, 0))
}

func TestInvert(t *testing.T) {
	buf := FilledBuffer(3, 3, opaque)
	buf.SetRGBA(1, 1, color.RGBA{})
	inv := Invert(buf)

	assert.Equal(t, color.RGBA{R: 0xdf, G: 0xbf, B: 0x9f, A: 0xff}, inv.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, inv.RGBAAt(1, 1), "transparent pixels stay transparent")
	assert.True(t, BuffersEqual(buf, Invert(inv)))
}

func TestInvertPremultiplied(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.SetRGBA(0, 0, color.RGBA{A: 0x80})
	c := Invert(buf).RGBAAt(0, 0)
	assert.Equal(t, uint8(0x80), c.A)
	assert.Equal(t, uint8(0x80), c.R)
	assert.LessOrEqual(t, c.G, c.A)
}

func TestApplyFilterNone(t *testing.T) {
	src := gradient(4, 4)
	out := ApplyFilter(FilterNone, src)
	assert.True(t, BuffersEqual(src, out))
	assert.NotSame(t, src, out)
}
