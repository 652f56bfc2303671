package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"layerpaint/editor"
)

type Config struct {
	SaveDirectory string  `toml:"save_directory"`
	CanvasWidth   int     `toml:"canvas_width"`
	CanvasHeight  int     `toml:"canvas_height"`
	BrushWidth    float64 `toml:"brush_width"`
	BrushColor    string  `toml:"brush_color"`
	FontFamily    string  `toml:"font_family"`
	FontSize      float64 `toml:"font_size"`
	JPEGQuality   int     `toml:"jpeg_quality"`
	UndoLimit     int     `toml:"undo_limit"`
	Confirmations bool    `toml:"confirmations"`
	CopySavedPath bool    `toml:"copy_saved_path"`
}

func defaultConfig() *Config {
	return &Config{
		CanvasWidth:   defaultCanvasWidth,
		CanvasHeight:  defaultCanvasHeight,
		BrushWidth:    2,
		BrushColor:    "#000000",
		FontFamily:    editor.DefaultFont.Family,
		FontSize:      12,
		JPEGQuality:   90,
		UndoLimit:     editor.DefaultUndoLimit,
		Confirmations: true,
	}
}

// loadConfig reads ~/.layerpaintrc. A missing or broken file yields the
// defaults; the error is returned so the caller can report it.
func loadConfig() (*Config, error) {
	path, err := homedir.Expand(filepath.Join("~", configFileName))
	if err != nil {
		return defaultConfig(), err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig(), fmt.Errorf("invalid %s: %w", configFileName, err)
	}
	config.Validate()
	return config, nil
}

// Validate replaces out-of-range values with defaults and expands the save
// directory.
func (c *Config) Validate() {
	def := defaultConfig()
	if c.CanvasWidth <= 0 || c.CanvasWidth > 10000 {
		c.CanvasWidth = def.CanvasWidth
	}
	if c.CanvasHeight <= 0 || c.CanvasHeight > 10000 {
		c.CanvasHeight = def.CanvasHeight
	}
	if c.BrushWidth < 1 {
		c.BrushWidth = def.BrushWidth
	}
	if _, err := parseHexColor(c.BrushColor); err != nil {
		c.BrushColor = def.BrushColor
	}
	switch c.FontFamily {
	case "sans", "mono", "bold":
	default:
		c.FontFamily = def.FontFamily
	}
	if c.FontSize < 4 || c.FontSize > 200 {
		c.FontSize = def.FontSize
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = def.JPEGQuality
	}
	if c.UndoLimit < 1 {
		c.UndoLimit = def.UndoLimit
	}
	if c.SaveDirectory != "" {
		if dir, err := homedir.Expand(c.SaveDirectory); err == nil {
			c.SaveDirectory = dir
		}
		if abs, err := filepath.Abs(c.SaveDirectory); err == nil {
			c.SaveDirectory = abs
		}
	}
}

func (c *Config) brushColor() color.RGBA {
	col, err := parseHexColor(c.BrushColor)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return col
}

func (c *Config) font() editor.Font {
	return editor.Font{Family: c.FontFamily, Size: c.FontSize}
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
