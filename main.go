package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"

	"layerpaint/editor"
)

func main() {
	logger, closeLog := setupLogging()
	defer closeLog()

	config, err := loadConfig()
	m := newModel(config, logger)
	if err != nil {
		m.errorMessage = err.Error()
	}
	if len(os.Args) > 1 {
		m.openImage(os.Args[1], false)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging writes debug logs to the file named by LAYERPAINT_DEBUG.
// The terminal belongs to the UI, so without it logs are dropped.
func setupLogging() (*slog.Logger, func()) {
	path := os.Getenv(debugEnvVar)
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := tea.LogToFile(path, "layerpaint")
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }
}

func newModel(config *Config, logger *slog.Logger) model {
	prompt := &textPrompt{}
	ctrl := editor.NewController(editor.Options{
		Width:       config.CanvasWidth,
		Height:      config.CanvasHeight,
		UndoLimit:   config.UndoLimit,
		BrushColor:  config.brushColor(),
		BrushWidth:  config.BrushWidth,
		JPEGQuality: config.JPEGQuality,
		Prompt:      prompt.ask,
		Logger:      logger,
	})
	ctrl.Engine().SetFont(config.font())
	return model{
		ctrl:              ctrl,
		config:            config,
		prompt:            prompt,
		mode:              ModeNormal,
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.Resize(m.viewSize())
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeTextInput, ModeRename, ModeColorInput:
			return m.handleInputKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help {
		return m, nil
	}
	p := cellPoint(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if m.mouseDown {
			m.ctrl.Move(p)
			return m, nil
		}
		if m.penDown {
			return m, nil
		}
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.ensureCursorInBounds()
		if m.beginTextAt(p) {
			return m, nil
		}
		m.mouseDown = true
		m.errorMessage = ""
		m.successMessage = ""
		m.ctrl.Press(p)
	case tea.MouseMotion:
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.ensureCursorInBounds()
		if m.mouseDown {
			m.ctrl.Move(p)
		}
	case tea.MouseRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.ctrl.Release(p)
		}
	case tea.MouseWheelUp:
		m.setStatus(m.ctrl.ZoomIn())
	case tea.MouseWheelDown:
		m.setStatus(m.ctrl.ZoomOut())
	}
	return m, nil
}

// beginTextAt switches to text entry when a text-tool press at p would
// create a new item. Presses on an existing item go straight through so
// the item can be dragged.
func (m *model) beginTextAt(p gg.Point) bool {
	if m.ctrl.Engine().Tool() != editor.ToolText || m.ctrl.TextAt(p) {
		return false
	}
	if _, ok := m.ctrl.Viewport().WidgetToImage(p, m.ctrl.Document().Size()); !ok {
		return false
	}
	m.textAt = point{X: int(p.X), Y: int(p.Y)}
	m.startInput(ModeTextInput, "")
	return true
}

// placeText replays the press that opened text entry, now that the prompt
// has an answer.
func (m *model) placeText(text string) {
	if text == "" {
		return
	}
	p := gg.Point{X: float64(m.textAt.X), Y: float64(m.textAt.Y)}
	m.prompt.set(text)
	m.ctrl.Press(p)
	m.ctrl.Release(p)
	m.prompt.reset()
	m.successMessage = "Text placed, Enter to commit"
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "up", "down", "left", "right", "shift+up", "shift+down", "shift+left", "shift+right":
		m.handleCursorMove(key, m.getMoveSpeed(key))
	case " ", "space":
		m.togglePen()
	case "enter":
		m.setStatus(m.ctrl.CommitText())
	case "esc":
		m.cancel()

	case "b", "e", "l", "r", "c", "s", "a", "t":
		m.setStatus(m.ctrl.SetTool(toolKeys[key]))

	case "n":
		m.setStatus(m.ctrl.AddLayer())
	case "D":
		m.setStatus(m.ctrl.DuplicateLayer())
	case "x":
		if m.config.Confirmations && m.ctrl.Document().LayerCount() > 1 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveLayer
			return m, nil
		}
		m.setStatus(m.ctrl.RemoveLayer())
	case "[":
		m.setStatus(m.ctrl.ActivateLayer(m.ctrl.Document().ActiveIndex() - 1))
	case "]":
		m.setStatus(m.ctrl.ActivateLayer(m.ctrl.Document().ActiveIndex() + 1))
	case "{":
		m.setStatus(m.ctrl.MoveLayer(-1))
	case "}":
		m.setStatus(m.ctrl.MoveLayer(1))
	case "R":
		m.startInput(ModeRename, m.ctrl.Document().ActiveLayer().Name)
	case "o":
		m.setStatus(m.ctrl.SetLayerOpacity(m.ctrl.Document().ActiveLayer().Opacity - opacityStep))
	case "O":
		m.setStatus(m.ctrl.SetLayerOpacity(m.ctrl.Document().ActiveLayer().Opacity + opacityStep))
	case "v":
		m.setStatus(m.ctrl.SetLayerVisible(!m.ctrl.Document().ActiveLayer().Visible))

	case "u":
		m.undo()
	case "U":
		m.redo()

	case "+", "=":
		m.setStatus(m.ctrl.ZoomIn())
	case "-":
		m.setStatus(m.ctrl.ZoomOut())
	case "0":
		m.setStatus(m.ctrl.SetZoom(1))

	case "h":
		m.setStatus(m.ctrl.FlipHorizontal())
	case "H":
		m.setStatus(m.ctrl.FlipVertical())
	case "<":
		m.setStatus(m.ctrl.RotateLeft())
	case ">":
		m.setStatus(m.ctrl.RotateRight())
	case "g":
		if m.ctrl.PreviewActive() == editor.FilterGrayscale {
			m.setStatus(m.ctrl.Grayscale())
		} else {
			m.setStatus(m.ctrl.PreviewGrayscale())
		}
	case "i":
		if m.ctrl.PreviewActive() == editor.FilterInvert {
			m.setStatus(m.ctrl.InvertColors())
		} else {
			m.setStatus(m.ctrl.PreviewInvert())
		}
	case "C":
		m.setStatus(m.ctrl.ClearActiveLayer())

	case "y":
		m.setStatus(m.ctrl.Copy())
	case "X":
		m.setStatus(m.ctrl.Cut())
	case "p":
		m.setStatus(m.ctrl.Paste())

	case "f", "F":
		m.fileOp = FileOpOpen
		if key == "F" {
			m.fileOp = FileOpImport
		}
		m.startInput(ModeFileInput, "")
		m.scanImageFiles()
	case "w":
		m.fileOp = FileOpSave
		name := ""
		if m.filename != "" {
			name = filepath.Base(m.filename)
		}
		m.startInput(ModeFileInput, name)

	case "#":
		m.startInput(ModeColorInput, hexColor(m.ctrl.Engine().Color()))
	case "1", "2", "3", "4", "5", "6", "7", "8":
		col, _ := parseHexColor(palette[key[0]-'1'])
		m.setStatus(m.ctrl.SetBrushColor(col))
	case "(":
		m.setStatus(m.ctrl.SetBrushWidth(m.ctrl.Engine().Width() - brushSizeStep))
	case ")":
		m.setStatus(m.ctrl.SetBrushWidth(m.ctrl.Engine().Width() + brushSizeStep))
	}
	return m, nil
}

var toolKeys = map[string]editor.ToolKind{
	"b": editor.ToolBrush,
	"e": editor.ToolEraser,
	"l": editor.ToolLine,
	"r": editor.ToolRectangle,
	"c": editor.ToolCircle,
	"s": editor.ToolRectSelect,
	"a": editor.ToolLassoSelect,
	"t": editor.ToolText,
}

// cancel backs out of the innermost pending state: a lowered pen, a filter
// preview, the selection, then uncommitted text.
func (m *model) cancel() {
	if m.penDown {
		m.penDown = false
		m.ctrl.Release(m.cursorPoint())
		return
	}
	if status := m.ctrl.CancelPreview(); status != "" {
		m.setStatus(status)
		return
	}
	if status := m.ctrl.ClearSelection(); status != "" {
		m.setStatus(status)
		return
	}
	m.setStatus(m.ctrl.DiscardText())
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.inputText = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		text := m.inputText
		mode := m.mode
		m.mode = ModeNormal
		m.inputText = ""
		m.errorMessage = ""
		m.successMessage = ""
		switch mode {
		case ModeTextInput:
			m.placeText(text)
		case ModeRename:
			m.setStatus(m.ctrl.RenameLayer(strings.TrimSpace(text)))
		case ModeColorInput:
			col, err := parseHexColor(text)
			if err != nil {
				m.errorMessage = fmt.Sprintf("Invalid color: %s", text)
				return m, nil
			}
			m.setStatus(m.ctrl.SetBrushColor(col))
		}
		return m, nil
	}
	m.editLine(msg)
	return m, nil
}

func (m model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.inputText = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyUp:
		m.moveFileSelection(-1)
		return m, nil
	case tea.KeyDown:
		m.moveFileSelection(1)
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.inputText)
		if name == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		m.errorMessage = ""
		switch m.fileOp {
		case FileOpOpen, FileOpImport:
			m.openImage(name, m.fileOp == FileOpImport)
		case FileOpSave:
			path := m.resolvePath(saveTarget(name))
			if _, err := os.Stat(path); err == nil && m.config.Confirmations {
				m.pendingPath = path
				m.mode = ModeConfirm
				m.confirmAction = ConfirmOverwriteFile
				return m, nil
			}
			if err := m.saveImage(path); err != nil {
				m.errorMessage = fmt.Sprintf("Error saving file: %s", err.Error())
			}
		}
		if m.errorMessage == "" {
			m.mode = ModeNormal
			m.inputText = ""
		}
		return m, nil
	}
	m.editLine(msg)
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			if err := m.saveImage(m.pendingPath); err != nil {
				m.errorMessage = fmt.Sprintf("Error saving file: %s", err.Error())
			}
			m.pendingPath = ""
			m.inputText = ""
		case ConfirmRemoveLayer:
			m.setStatus(m.ctrl.RemoveLayer())
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			return m, nil
		}
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := len(helpLines) - m.visibleHelpHeight()
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	if m.mode == ModeFileInput && m.fileOp != FileOpSave {
		m.writeFileList(&result)
	} else {
		result.WriteString(strings.Join(m.renderCanvas(), "\n"))
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) writeFileList(result *strings.Builder) {
	width := m.width
	if width < 1 {
		width = 1
	}
	result.WriteString("Select an image:\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	rows := 2
	if len(m.fileList) == 0 {
		result.WriteString("(No images found)\n")
		rows++
	} else {
		maxFiles := m.canvasRows() - 4
		if maxFiles < 1 {
			maxFiles = 1
		}
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			if i == m.selectedFileIndex {
				result.WriteString("> " + m.fileList[i] + " <\n")
			} else {
				result.WriteString("  " + m.fileList[i] + "\n")
			}
			rows++
		}
	}
	result.WriteString(strings.Repeat("─", width))
	rows++
	for ; rows < m.canvasRows(); rows++ {
		result.WriteString("\n")
	}
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		return fmt.Sprintf("Mode: TEXT | Text: %s | Enter=place, Esc=cancel", m.inputDisplay())
	case ModeRename:
		return fmt.Sprintf("Mode: RENAME | Name: %s | Enter=confirm, Esc=cancel", m.inputDisplay())
	case ModeColorInput:
		return fmt.Sprintf("Mode: COLOR | Hex: %s | Enter=confirm, Esc=cancel", m.inputDisplay())
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpOpen:
			opStr = "Open"
		case FileOpImport:
			opStr = "Import as layer"
		case FileOpSave:
			opStr = "Save"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s | Enter=retry, Esc=cancel", m.errorMessage, opStr, m.inputDisplay())
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s | ↑/↓=navigate, Ctrl+V=paste path, Enter=confirm, Esc=cancel", opStr, m.inputDisplay())
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		case ConfirmRemoveLayer:
			message = fmt.Sprintf("Remove %s? (y/n)", m.ctrl.Document().ActiveLayer().Name)
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	doc := m.ctrl.Document()
	layer := doc.ActiveLayer()
	engine := m.ctrl.Engine()
	modeStr := m.modeString()
	if m.penDown {
		modeStr = "PEN"
	}
	status := fmt.Sprintf("Mode: %s | Tool: %s | Layer: %s (%d/%d, %d%%)",
		modeStr, engine.Tool(), layer.Name, doc.ActiveIndex()+1, doc.LayerCount(), int(layer.Opacity*100+0.5))
	if !layer.Visible {
		status += " hidden"
	}
	undos, redos := m.historyDepth()
	status += fmt.Sprintf(" | %s %g | Zoom: %.1fx | Undo: %d/%d", hexColor(engine.Color()), engine.Width(), m.ctrl.Viewport().Zoom, undos, redos)
	if kind := m.ctrl.PreviewActive(); kind != editor.FilterNone {
		status += fmt.Sprintf(" | Preview: %s", kind)
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeRename:
		return "RENAME"
	case ModeColorInput:
		return "COLOR"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"layerpaint Help",
	"===============",
	"",
	"Drawing:",
	"--------",
	"  mouse drag        Use the current tool",
	"  ←/↓/↑/→           Move cursor (Shift = faster)",
	"  Space             Lower/lift the keyboard pen at the cursor",
	"  Esc               Lift pen / cancel preview / clear selection / discard text",
	"",
	"Tools:",
	"------",
	"  b  brush     e  eraser    l  line      r  rectangle",
	"  c  circle    s  select    a  lasso     t  text",
	"  Enter             Commit pending text to the active layer",
	"  1-8               Palette color",
	"  #                 Enter a hex color",
	"  ( / )             Brush size down/up",
	"",
	"Layers:",
	"-------",
	"  n                 New layer",
	"  D                 Duplicate layer",
	"  x                 Remove layer",
	"  [ / ]             Previous/next layer",
	"  { / }             Move layer down/up",
	"  R                 Rename layer",
	"  o / O             Opacity down/up",
	"  v                 Toggle visibility",
	"  C                 Clear layer",
	"",
	"Image:",
	"------",
	"  h / H             Flip horizontal/vertical",
	"  < / >             Rotate left/right",
	"  g                 Grayscale (first press previews, second applies)",
	"  i                 Invert (first press previews, second applies)",
	"  y / X / p         Copy / cut / paste selection",
	"  + / - / 0         Zoom in / out / reset",
	"",
	"Files:",
	"------",
	"  f                 Open image into the active layer",
	"  F                 Import image as a new layer",
	"  w                 Save flattened image (.png, .jpg, .bmp)",
	"",
	"General:",
	"  u / U             Undo / redo on the active layer",
	"  ?                 Toggle this help screen",
	"  q/Ctrl+C          Quit",
}

func (m model) visibleHelpHeight() int {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	return visibleHeight
}

func (m model) helpView() string {
	visibleHeight := m.visibleHelpHeight()
	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(0, len(helpLines)-visibleHeight)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
