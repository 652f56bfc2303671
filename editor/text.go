package editor

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font describes the face a text item is set in.
type Font struct {
	Family string
	Size   float64
}

var DefaultFont = Font{Family: "sans", Size: 20}

// TextLayout measures and rasterizes text for text items.
type TextLayout interface {
	// Measure returns the extent of text set at the origin.
	Measure(text string, f Font) image.Rectangle
	// Render draws text into dst with its top-left corner at at.
	Render(text string, f Font, c color.Color, dst *image.RGBA, at image.Point)
}

// TextItem is a piece of text floating above the active layer until it is
// committed.
type TextItem struct {
	Text     string
	Position image.Point
	Font     Font
	Color    color.RGBA
	Bounds   image.Rectangle
	Selected bool
}

func (t *TextItem) translate(d image.Point) {
	t.Position = t.Position.Add(d)
	t.Bounds = t.Bounds.Add(d)
}

var fontData = map[string][]byte{
	"mono": gomono.TTF,
	"sans": goregular.TTF,
	"bold": gobold.TTF,
}

// FontLayout lays text out with the Go fonts through freetype. Parsed fonts
// and faces are cached.
type FontLayout struct {
	fonts map[string]*truetype.Font
	faces map[Font]font.Face
}

func NewFontLayout() *FontLayout {
	return &FontLayout{
		fonts: make(map[string]*truetype.Font),
		faces: make(map[Font]font.Face),
	}
}

func (fl *FontLayout) face(f Font) (font.Face, error) {
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	if face, ok := fl.faces[f]; ok {
		return face, nil
	}
	data, ok := fontData[f.Family]
	if !ok {
		data = fontData[DefaultFont.Family]
	}
	ttf, ok := fl.fonts[f.Family]
	if !ok {
		var err error
		ttf, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %q: %v", f.Family, err)
		}
		fl.fonts[f.Family] = ttf
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fl.faces[f] = face
	return face, nil
}

func (fl *FontLayout) Measure(text string, f Font) image.Rectangle {
	face, err := fl.face(f)
	if err != nil {
		return image.Rectangle{}
	}
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	lineHeight := face.Metrics().Height.Ceil()
	return image.Rect(0, 0, width, lineHeight*len(lines))
}

func (fl *FontLayout) Render(text string, f Font, c color.Color, dst *image.RGBA, at image.Point) {
	face, err := fl.face(f)
	if err != nil {
		return
	}
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	ascent := m.Ascent.Ceil()

	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(face)
	dc.SetColor(c)
	for i, line := range strings.Split(text, "\n") {
		dc.DrawString(line, float64(at.X), float64(at.Y+i*lineHeight+ascent))
	}
}
