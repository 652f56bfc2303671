package main

import (
	"image"

	"layerpaint/editor"
)

type model struct {
	width  int
	height int

	ctrl   *editor.Controller
	config *Config
	prompt *textPrompt

	cursorX int
	cursorY int
	penDown bool

	mouseDown bool

	mode       Mode
	help       bool
	helpScroll int

	inputText      string
	inputCursorPos int
	textAt         point

	filename          string
	pendingPath       string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction

	errorMessage   string
	successMessage string
}

type point struct {
	X, Y int
}

// textPrompt feeds the text typed in ModeTextInput to the editor's prompt
// callback, which runs synchronously inside the replayed press.
type textPrompt struct {
	text  string
	ready bool
}

func (p *textPrompt) ask(image.Point) (string, bool) {
	if !p.ready || p.text == "" {
		return "", false
	}
	return p.text, true
}

func (p *textPrompt) set(text string) {
	p.text = text
	p.ready = true
}

func (p *textPrompt) reset() {
	p.text = ""
	p.ready = false
}
