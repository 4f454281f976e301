package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const geometryFile = "window-state.json"

// Package-level hooks for testing. In production these use the real
// implementations.
var (
	getGeometryPath = defaultGeometryPath
	getWindowSize   = wailsruntime.WindowGetSize
)

// Geometry persists the last window size between runs.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func defaultGeometryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("warning: could not determine home directory, using /tmp: %v", err)
		return filepath.Join("/tmp", ".workbench", geometryFile)
	}
	return filepath.Join(home, ".workbench", geometryFile)
}

// loadGeometry reads the saved window size. Returns nil when the file
// is missing, unreadable, or smaller than the minimum constraint.
func loadGeometry(minWidth, minHeight int) *Geometry {
	data, err := os.ReadFile(getGeometryPath())
	if err != nil {
		return nil
	}

	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		log.Printf("warning: failed to parse window geometry, ignoring: %v", err)
		return nil
	}
	if g.Width < minWidth || g.Height < minHeight {
		return nil
	}
	return &g
}

func saveGeometry(g Geometry) error {
	path := getGeometryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// saveCurrentGeometry persists the live window size at shutdown.
func saveCurrentGeometry(ctx context.Context) {
	w, h := getWindowSize(ctx)
	if w <= 0 || h <= 0 {
		return
	}
	if err := saveGeometry(Geometry{Width: w, Height: h}); err != nil {
		log.Printf("warning: failed to save window geometry: %v", err)
	}
}

// initialSize returns the window size to open with: the saved geometry
// when present, otherwise the defaults, clamped to the minimums.
func initialSize(s Settings) (int, int) {
	width, height := 1280, 800
	if g := loadGeometry(s.Window.MinWidth, s.Window.MinHeight); g != nil {
		width, height = g.Width, g.Height
	}
	if width < s.Window.MinWidth {
		width = s.Window.MinWidth
	}
	if height < s.Window.MinHeight {
		height = s.Window.MinHeight
	}
	return width, height
}
