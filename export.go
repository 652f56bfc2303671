package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"layerpaint/editor"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// scanImageFiles lists openable images in the save directory, or the
// working directory when none is configured.
func (m *model) scanImageFiles() {
	m.fileList = []string{}
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && isImageFile(entry.Name()) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.inputText = m.fileList[0]
		m.inputCursorPos = len([]rune(m.inputText))
	}
}

func (m *model) moveFileSelection(delta int) {
	if len(m.fileList) == 0 {
		return
	}
	m.selectedFileIndex = (m.selectedFileIndex + delta + len(m.fileList)) % len(m.fileList)
	m.inputText = m.fileList[m.selectedFileIndex]
	m.inputCursorPos = len([]rune(m.inputText))
}

// resolvePath places bare names in the save directory.
func (m *model) resolvePath(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return m.config.GetSavePath(name)
}

func (m *model) openImage(filename string, asLayer bool) {
	path := m.resolvePath(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error opening file: %s", err.Error())
		return
	}
	name := filepath.Base(path)
	if asLayer {
		m.setStatus(m.ctrl.ImportImage(data, name))
	} else {
		m.setStatus(m.ctrl.OpenImage(data, name))
	}
	if m.errorMessage == "" {
		m.filename = path
	}
}

// saveTarget adds a .png extension to names without a known one.
func saveTarget(filename string) string {
	if !isImageFile(filename) {
		filename += ".png"
	}
	return filename
}

func (m *model) saveImage(path string) error {
	format, err := editor.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, status := m.ctrl.SaveComposite(format)
	if data == nil {
		return fmt.Errorf("%s", status)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	absPath, _ := filepath.Abs(path)
	m.filename = absPath
	m.successMessage = fmt.Sprintf("Saved to %s", absPath)
	m.errorMessage = ""
	if m.config.CopySavedPath {
		writeClipboardText(absPath)
	}
	return nil
}
