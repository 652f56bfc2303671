package editor

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

// Zoom limits applied by ZoomIn/ZoomOut.
const (
	MinZoom  = 0.2
	MaxZoom  = 5.0
	ZoomStep = 0.1
)

// Viewport maps between widget coordinates and image coordinates. Offset is
// the widget-space position of the image's top-left corner.
type Viewport struct {
	Zoom   float64
	Offset gg.Point
}

func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// SetZoom ignores non-positive and non-finite factors.
func (v *Viewport) SetZoom(z float64) bool {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return false
	}
	v.Zoom = z
	return true
}

// Step changes the zoom by n steps, clamped to [MinZoom, MaxZoom].
func (v *Viewport) Step(n int) float64 {
	z := v.Zoom + float64(n)*ZoomStep
	z = math.Round(z*10) / 10
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
	return v.Zoom
}

// Recenter places the scaled image in the middle of a widget of size view.
func (v *Viewport) Recenter(view, img image.Point) {
	v.Offset = gg.Point{
		X: (float64(view.X) - float64(img.X)*v.Zoom) / 2,
		Y: (float64(view.Y) - float64(img.Y)*v.Zoom) / 2,
	}
}

// WidgetToImage maps a widget point onto a buffer of the given size,
// rounding to the nearest pixel. ok is false when the result is not finite
// or the rounded point lands outside the buffer.
func (v Viewport) WidgetToImage(p gg.Point, size image.Point) (image.Point, bool) {
	ix := (p.X - v.Offset.X) / v.Zoom
	iy := (p.Y - v.Offset.Y) / v.Zoom
	if math.IsNaN(ix) || math.IsNaN(iy) || math.IsInf(ix, 0) || math.IsInf(iy, 0) {
		return image.Point{}, false
	}
	rx, ry := math.Round(ix), math.Round(iy)
	if rx < 0 || ry < 0 || rx >= float64(size.X) || ry >= float64(size.Y) {
		return image.Point{}, false
	}
	return image.Pt(int(rx), int(ry)), true
}

// PixelAt returns the buffer pixel drawn under widget point p, which is the
// one whose square contains it. Rendering uses this; input uses
// WidgetToImage.
func (v Viewport) PixelAt(p gg.Point, size image.Point) (image.Point, bool) {
	ix := math.Floor((p.X - v.Offset.X) / v.Zoom)
	iy := math.Floor((p.Y - v.Offset.Y) / v.Zoom)
	if math.IsNaN(ix) || math.IsNaN(iy) || math.IsInf(ix, 0) || math.IsInf(iy, 0) {
		return image.Point{}, false
	}
	if ix < 0 || iy < 0 || ix >= float64(size.X) || iy >= float64(size.Y) {
		return image.Point{}, false
	}
	return image.Pt(int(ix), int(iy)), true
}

// ImageToWidget is the inverse of WidgetToImage.
func (v Viewport) ImageToWidget(p image.Point) gg.Point {
	return gg.Point{
		X: v.Offset.X + float64(p.X)*v.Zoom,
		Y: v.Offset.Y + float64(p.Y)*v.Zoom,
	}
}

// Display is the widget-space rectangle covered by an image of size img.
func (v Viewport) Display(img image.Point) image.Rectangle {
	origin := image.Pt(int(math.Floor(v.Offset.X)), int(math.Floor(v.Offset.Y)))
	return image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(int(float64(img.X)*v.Zoom), int(float64(img.Y)*v.Zoom))),
	}
}
