package editor

import "strings"

// ToolKind is the active pointer tool.
type ToolKind int

const (
	ToolBrush ToolKind = iota
	ToolEraser
	ToolLine
	ToolRectangle
	ToolCircle
	ToolRectSelect
	ToolLassoSelect
	ToolText
)

var toolNames = map[ToolKind]string{
	ToolBrush:       "brush",
	ToolEraser:      "eraser",
	ToolLine:        "line",
	ToolRectangle:   "rectangle",
	ToolCircle:      "circle",
	ToolRectSelect:  "select",
	ToolLassoSelect: "lasso",
	ToolText:        "text",
}

func (t ToolKind) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTool looks a tool up by its String name.
func ParseTool(name string) (ToolKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range toolNames {
		if v == name {
			return k, true
		}
	}
	return ToolBrush, false
}

// Freehand tools paint on every move.
func (t ToolKind) Freehand() bool {
	return t == ToolBrush || t == ToolEraser
}

// Shape tools commit one primitive on release.
func (t ToolKind) Shape() bool {
	return t == ToolLine || t == ToolRectangle || t == ToolCircle
}

func (t ToolKind) Selects() bool {
	return t == ToolRectSelect || t == ToolLassoSelect
}
