package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// setupGeometryHooks isolates geometry persistence in a temp dir.
func setupGeometryHooks(t *testing.T) string {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), geometryFile)

	origGetGeometryPath := getGeometryPath
	origGetWindowSize := getWindowSize
	getGeometryPath = func() string { return statePath }
	getWindowSize = func(context.Context) (int, int) { return 0, 0 }

	t.Cleanup(func() {
		getGeometryPath = origGetGeometryPath
		getWindowSize = origGetWindowSize
	})

	return statePath
}

func TestGeometryRoundTrip(t *testing.T) {
	setupGeometryHooks(t)

	if err := saveGeometry(Geometry{Width: 1600, Height: 1000}); err != nil {
		t.Fatalf("saveGeometry failed: %v", err)
	}

	g := loadGeometry(1200, 700)
	if g == nil {
		t.Fatal("expected saved geometry to load")
	}
	if g.Width != 1600 || g.Height != 1000 {
		t.Errorf("expected 1600x1000, got %dx%d", g.Width, g.Height)
	}
}

func TestLoadGeometryMissingFile(t *testing.T) {
	setupGeometryHooks(t)

	if g := loadGeometry(1200, 700); g != nil {
		t.Errorf("expected nil for a missing file, got %+v", g)
	}
}

func TestLoadGeometryRejectsBelowMinimum(t *testing.T) {
	setupGeometryHooks(t)

	if err := saveGeometry(Geometry{Width: 800, Height: 500}); err != nil {
		t.Fatalf("saveGeometry failed: %v", err)
	}
	if g := loadGeometry(1200, 700); g != nil {
		t.Errorf("geometry below the minimum must be rejected, got %+v", g)
	}
}

func TestLoadGeometryCorruptFile(t *testing.T) {
	statePath := setupGeometryHooks(t)

	if err := os.WriteFile(statePath, []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to write state: %v", err)
	}
	if g := loadGeometry(1200, 700); g != nil {
		t.Errorf("corrupt geometry must be ignored, got %+v", g)
	}
}

func TestInitialSize(t *testing.T) {
	setupGeometryHooks(t)
	s := defaultSettings()

	// No saved state: defaults, already above the minimum.
	w, h := initialSize(s)
	if w != 1280 || h != 800 {
		t.Errorf("expected default 1280x800, got %dx%d", w, h)
	}

	// Saved state is restored.
	if err := saveGeometry(Geometry{Width: 1920, Height: 1080}); err != nil {
		t.Fatalf("saveGeometry failed: %v", err)
	}
	w, h = initialSize(s)
	if w != 1920 || h != 1080 {
		t.Errorf("expected restored 1920x1080, got %dx%d", w, h)
	}
}

func TestInitialSizeClampsToMinimum(t *testing.T) {
	setupGeometryHooks(t)

	s := defaultSettings()
	s.Window.MinWidth = 1400
	s.Window.MinHeight = 900

	w, h := initialSize(s)
	if w != 1400 || h != 900 {
		t.Errorf("expected clamp to 1400x900, got %dx%d", w, h)
	}
}

func TestSaveCurrentGeometry(t *testing.T) {
	setupGeometryHooks(t)

	getWindowSize = func(context.Context) (int, int) { return 1500, 950 }
	saveCurrentGeometry(context.Background())

	g := loadGeometry(1200, 700)
	if g == nil {
		t.Fatal("expected geometry to be saved")
	}
	if g.Width != 1500 || g.Height != 950 {
		t.Errorf("expected 1500x950, got %dx%d", g.Width, g.Height)
	}
}

func TestSaveCurrentGeometrySkipsInvalidSize(t *testing.T) {
	statePath := setupGeometryHooks(t)

	getWindowSize = func(context.Context) (int, int) { return 0, 0 }
	saveCurrentGeometry(context.Background())

	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Error("no state file expected when the window size is unavailable")
	}
}
