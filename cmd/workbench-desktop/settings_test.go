package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupConfigPath points the settings loader at a temp file and
// returns its path.
func setupConfigPath(t *testing.T) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.toml")

	orig := getConfigPath
	getConfigPath = func() string { return configPath }
	t.Cleanup(func() { getConfigPath = orig })

	return configPath
}

func TestLoadSettingsDefaults(t *testing.T) {
	setupConfigPath(t)

	s := loadSettings()
	if s.Window.MinWidth != 1200 || s.Window.MinHeight != 700 {
		t.Errorf("expected default minimum 1200x700, got %dx%d", s.Window.MinWidth, s.Window.MinHeight)
	}
	if s.Window.Title != "Workbench" {
		t.Errorf("expected default title 'Workbench', got %q", s.Window.Title)
	}
	if s.Bridge.DrainTimeoutMS != 5000 {
		t.Errorf("expected default drain timeout 5000ms, got %d", s.Bridge.DrainTimeoutMS)
	}
	if s.Bridge.MaxWorkers != 4 {
		t.Errorf("expected default max workers 4, got %d", s.Bridge.MaxWorkers)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	configPath := setupConfigPath(t)

	content := `[window]
min_width = 1400
min_height = 900
title = "My Workbench"

[bridge]
drain_timeout_ms = 2500
max_workers = 8
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s := loadSettings()
	if s.Window.MinWidth != 1400 || s.Window.MinHeight != 900 {
		t.Errorf("expected 1400x900, got %dx%d", s.Window.MinWidth, s.Window.MinHeight)
	}
	if s.Window.Title != "My Workbench" {
		t.Errorf("expected title 'My Workbench', got %q", s.Window.Title)
	}
	if s.Bridge.DrainTimeoutMS != 2500 {
		t.Errorf("expected drain timeout 2500ms, got %d", s.Bridge.DrainTimeoutMS)
	}
	if s.Bridge.MaxWorkers != 8 {
		t.Errorf("expected max workers 8, got %d", s.Bridge.MaxWorkers)
	}
}

func TestLoadSettingsClamping(t *testing.T) {
	configPath := setupConfigPath(t)

	content := `[window]
min_width = 100
min_height = 50

[bridge]
drain_timeout_ms = 600000
max_workers = 500
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s := loadSettings()
	if s.Window.MinWidth != 400 {
		t.Errorf("expected min width clamped to 400, got %d", s.Window.MinWidth)
	}
	if s.Window.MinHeight != 300 {
		t.Errorf("expected min height clamped to 300, got %d", s.Window.MinHeight)
	}
	if s.Bridge.DrainTimeoutMS != 60000 {
		t.Errorf("expected drain timeout clamped to 60000, got %d", s.Bridge.DrainTimeoutMS)
	}
	if s.Bridge.MaxWorkers != 32 {
		t.Errorf("expected max workers clamped to 32, got %d", s.Bridge.MaxWorkers)
	}
}

func TestLoadSettingsCorruptFile(t *testing.T) {
	configPath := setupConfigPath(t)

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s := loadSettings()
	if s.Window.MinWidth != 1200 || s.Window.MinHeight != 700 {
		t.Errorf("corrupt config should fall back to defaults, got %dx%d", s.Window.MinWidth, s.Window.MinHeight)
	}
}

func TestDrainTimeoutDuration(t *testing.T) {
	b := BridgeSettings{DrainTimeoutMS: 1500}
	if b.DrainTimeout() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", b.DrainTimeout())
	}
}
