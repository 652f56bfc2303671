package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeRename
	ModeColorInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpOpen FileOperation = iota
	FileOpImport
	FileOpSave
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOverwriteFile
	ConfirmRemoveLayer
)

const (
	opacityStep    = 0.1
	brushSizeStep  = 1
	fastMoveSpeed  = 4
	configFileName = ".layerpaintrc"
	debugEnvVar    = "LAYERPAINT_DEBUG"
)

// Terminal canvas defaults are far smaller than the editor's, since one
// cell shows a single column of two pixels at zoom 1.
const (
	defaultCanvasWidth  = 160
	defaultCanvasHeight = 96
)

// palette backs the 1-8 colour keys.
var palette = []string{
	"#000000",
	"#ffffff",
	"#e53935",
	"#43a047",
	"#1e88e5",
	"#fdd835",
	"#8e24aa",
	"#fb8c00",
}
