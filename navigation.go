package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
)

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "left", "shift+left":
		m.cursorX -= speed
	case "right", "shift+right":
		m.cursorX += speed
	case "up", "shift+up":
		m.cursorY -= speed
	case "down", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	if m.penDown {
		m.ctrl.Move(m.cursorPoint())
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return fastMoveSpeed
	default:
		return 1
	}
}

// cursorPoint is the widget point under the keyboard cursor: the top pixel
// row of its cell.
func (m *model) cursorPoint() gg.Point {
	return cellPoint(m.cursorX, m.cursorY)
}

func cellPoint(x, y int) gg.Point {
	return gg.Point{X: float64(x), Y: float64(2 * y)}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := m.canvasRows() - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// togglePen lifts or lowers the keyboard pen. Lowering presses at the
// cursor; lifting releases there.
func (m *model) togglePen() {
	p := m.cursorPoint()
	if m.penDown {
		m.penDown = false
		m.ctrl.Release(p)
		return
	}
	if m.beginTextAt(p) {
		return
	}
	m.penDown = true
	m.ctrl.Press(p)
}

// editLine applies one key to the single-line input buffer. It reports
// whether the key was consumed.
func (m *model) editLine(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyLeft:
		if m.inputCursorPos > 0 {
			m.inputCursorPos--
		}
	case tea.KeyRight:
		if m.inputCursorPos < len([]rune(m.inputText)) {
			m.inputCursorPos++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		m.inputCursorPos = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.inputCursorPos = len([]rune(m.inputText))
	case tea.KeyBackspace:
		if m.inputCursorPos > 0 {
			runes := []rune(m.inputText)
			m.inputText = string(append(runes[:m.inputCursorPos-1], runes[m.inputCursorPos:]...))
			m.inputCursorPos--
		}
	case tea.KeyDelete:
		runes := []rune(m.inputText)
		if m.inputCursorPos < len(runes) {
			m.inputText = string(append(runes[:m.inputCursorPos], runes[m.inputCursorPos+1:]...))
		}
	case tea.KeySpace:
		m.insertInput([]rune{' '})
	case tea.KeyRunes:
		m.insertInput(msg.Runes)
	case tea.KeyCtrlV:
		text, err := clipboardPath()
		if err != nil {
			m.errorMessage = "Could not read clipboard"
			return true
		}
		m.insertInput([]rune(text))
	default:
		return false
	}
	return true
}

func (m *model) insertInput(r []rune) {
	runes := []rune(m.inputText)
	if m.inputCursorPos > len(runes) {
		m.inputCursorPos = len(runes)
	}
	out := make([]rune, 0, len(runes)+len(r))
	out = append(out, runes[:m.inputCursorPos]...)
	out = append(out, r...)
	out = append(out, runes[m.inputCursorPos:]...)
	m.inputText = string(out)
	m.inputCursorPos += len(r)
}

func (m *model) startInput(mode Mode, initial string) {
	m.mode = mode
	m.inputText = initial
	m.inputCursorPos = len([]rune(initial))
}

// inputDisplay renders the input buffer with a block cursor, replacing the
// character under it.
func (m *model) inputDisplay() string {
	runes := []rune(m.inputText)
	pos := m.inputCursorPos
	if pos >= len(runes) {
		return m.inputText + "█"
	}
	runes[pos] = '█'
	return string(runes)
}
