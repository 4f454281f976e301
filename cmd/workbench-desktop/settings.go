package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultMinWidth       = 1200
	defaultMinHeight      = 700
	defaultTitle          = "Workbench"
	defaultDrainTimeoutMS = 5000
	defaultMaxWorkers     = 4
)

// getConfigPath is a test hook; production reads ~/.workbench/config.toml.
var getConfigPath = defaultConfigPath

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("warning: could not determine home directory, using /tmp: %v", err)
		return filepath.Join("/tmp", ".workbench", "config.toml")
	}
	return filepath.Join(home, ".workbench", "config.toml")
}

// WindowSettings is the [window] section of config.toml. The minimum
// size is consumed once at window creation.
type WindowSettings struct {
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
	Title     string `toml:"title"`
}

// BridgeSettings is the [bridge] section of config.toml.
type BridgeSettings struct {
	DrainTimeoutMS int `toml:"drain_timeout_ms"`
	MaxWorkers     int `toml:"max_workers"`
}

// DrainTimeout returns the shutdown drain deadline as a duration.
func (b BridgeSettings) DrainTimeout() time.Duration {
	return time.Duration(b.DrainTimeoutMS) * time.Millisecond
}

// Settings is the startup configuration surface.
type Settings struct {
	Window WindowSettings `toml:"window"`
	Bridge BridgeSettings `toml:"bridge"`
}

func defaultSettings() Settings {
	return Settings{
		Window: WindowSettings{
			MinWidth:  defaultMinWidth,
			MinHeight: defaultMinHeight,
			Title:     defaultTitle,
		},
		Bridge: BridgeSettings{
			DrainTimeoutMS: defaultDrainTimeoutMS,
			MaxWorkers:     defaultMaxWorkers,
		},
	}
}

// loadSettings reads config.toml, falling back to defaults when the
// file is missing or unparseable, and clamps values into sane ranges.
func loadSettings() Settings {
	defaults := defaultSettings()

	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: failed to read config, using defaults: %v", err)
		}
		return defaults
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		log.Printf("warning: failed to parse config, using defaults: %v", err)
		return defaults
	}

	return clampSettings(s)
}

func clampSettings(s Settings) Settings {
	if s.Window.MinWidth <= 0 {
		s.Window.MinWidth = defaultMinWidth
	} else if s.Window.MinWidth < 400 {
		s.Window.MinWidth = 400
	}
	if s.Window.MinHeight <= 0 {
		s.Window.MinHeight = defaultMinHeight
	} else if s.Window.MinHeight < 300 {
		s.Window.MinHeight = 300
	}
	if s.Window.Title == "" {
		s.Window.Title = defaultTitle
	}

	if s.Bridge.DrainTimeoutMS <= 0 {
		s.Bridge.DrainTimeoutMS = defaultDrainTimeoutMS
	} else if s.Bridge.DrainTimeoutMS > 60000 {
		s.Bridge.DrainTimeoutMS = 60000
	}
	if s.Bridge.MaxWorkers <= 0 {
		s.Bridge.MaxWorkers = defaultMaxWorkers
	} else if s.Bridge.MaxWorkers > 32 {
		s.Bridge.MaxWorkers = 32
	}

	return s
}
