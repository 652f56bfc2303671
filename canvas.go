package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"

	"layerpaint/editor"
)

// Outside the image the terminal shows this instead of pixels.
var backdrop = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

const halfBlock = "▀"

// cell is one terminal character: the upper half shows top, the lower half
// shows bottom.
type cell struct {
	top    color.RGBA
	bottom color.RGBA
}

func (m *model) canvasRows() int {
	rows := m.height - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// viewSize is the widget size in pixels handed to the controller: one pixel
// column per cell, two pixel rows per cell.
func (m *model) viewSize() image.Point {
	w := m.width
	if w < 1 {
		w = 1
	}
	return image.Pt(w, 2*m.canvasRows())
}

// sampleCells maps every cell of a cols×rows grid through the viewport onto
// frame. The composite is premultiplied, so transparent areas read as black.
func sampleCells(frame *image.RGBA, view editor.Viewport, cols, rows int) [][]cell {
	size := frame.Bounds().Size()
	sample := func(x, y int) color.RGBA {
		p, ok := view.PixelAt(gg.Point{X: float64(x), Y: float64(y)}, size)
		if !ok {
			return backdrop
		}
		c := frame.RGBAAt(p.X, p.Y)
		c.A = 0xff
		return c
	}
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{top: sample(x, 2*y), bottom: sample(x, 2*y+1)}
		}
	}
	return grid
}

// renderCells turns the grid into styled lines, batching runs of equal
// cells into a single lipgloss render.
func renderCells(grid [][]cell, cursorX, cursorY int, showCursor bool) []string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var line strings.Builder
		for x := 0; x < len(row); {
			if showCursor && x == cursorX && y == cursorY {
				line.WriteString(cursorStyle(row[x]).Render("+"))
				x++
				continue
			}
			end := x + 1
			for end < len(row) && row[end] == row[x] && !(showCursor && end == cursorX && y == cursorY) {
				end++
			}
			line.WriteString(cellStyle(row[x]).Render(strings.Repeat(halfBlock, end-x)))
			x = end
		}
		lines[y] = line.String()
	}
	return lines
}

func cellStyle(c cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(c.top))).
		Background(lipgloss.Color(hexColor(c.bottom)))
}

func cursorStyle(c cell) lipgloss.Style {
	fg := color.RGBA{A: 0xff}
	if luminance(c.top) < 0x80 {
		fg = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor(fg))).
		Background(lipgloss.Color(hexColor(c.top)))
}

func luminance(c color.RGBA) int {
	return (11*int(c.R) + 16*int(c.G) + 5*int(c.B)) / 32
}

func (m *model) renderCanvas() []string {
	grid := sampleCells(m.ctrl.Frame(), m.ctrl.Viewport(), m.viewSize().X, m.canvasRows())
	return renderCells(grid, m.cursorX, m.cursorY, m.mode == ModeNormal)
}
