package main

import (
	"fmt"
	"image/color"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// setStatus routes a controller status line to the success or error slot.
// Controller messages that describe a refusal are shown as errors.
func (m *model) setStatus(msg string) {
	m.errorMessage = ""
	m.successMessage = ""
	if msg == "" {
		return
	}
	if isRefusal(msg) {
		m.errorMessage = msg
		return
	}
	m.successMessage = msg
}

var refusals = []string{
	"Nothing to",
	"Need at least",
	"Cannot ",
	"Could not",
	"Unable to",
	"Invalid",
	"Clipboard is empty",
	"cannot be empty",
}

func isRefusal(msg string) bool {
	for _, r := range refusals {
		if strings.Contains(msg, r) {
			return true
		}
	}
	return false
}

// parseHexColor accepts #rgb and #rrggbb, with or without the hash.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// clipboardPath returns the first line of the system clipboard as a file
// path. File managers put file:// URLs there, sometimes quoted.
func clipboardPath() (string, error) {
	text, err := readClipboardText()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	line = strings.Trim(strings.TrimSpace(line), `"'`)
	if strings.HasPrefix(line, "file://") {
		if u, err := url.Parse(line); err == nil {
			line = u.Path
		}
	}
	return line, nil
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}
