package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

// resolveFrontendDir locates the built UI assets. The shell does not
// bundle them; packaging is an external collaborator.
func resolveFrontendDir() (string, error) {
	candidates := []string{
		os.Getenv("WORKBENCH_FRONTEND_DIR"),
		"frontend/dist",
		"../frontend/dist",
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", fmt.Errorf("frontend directory not found, set WORKBENCH_FRONTEND_DIR")
}

func main() {
	settings := loadSettings()

	app := NewApp(settings)
	if err := app.bootstrap(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	frontendDir, err := resolveFrontendDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve frontend failed: %v\n", err)
		os.Exit(1)
	}
	assets := os.DirFS(frontendDir)
	if _, err := fs.Stat(assets, "index.html"); err != nil {
		fmt.Fprintf(os.Stderr, "frontend index.html not found in %s: %v\n", frontendDir, err)
		os.Exit(1)
	}

	// Detect development mode
	isDev := os.Getenv("WORKBENCH_DEV") != "" || Version == "0.1.0-dev"

	logLevel := logger.INFO
	if isDev {
		logLevel = logger.DEBUG
	}

	width, height := initialSize(settings)

	err = wails.Run(&options.App{
		Title:     settings.Window.Title,
		Width:     width,
		Height:    height,
		MinWidth:  settings.Window.MinWidth,
		MinHeight: settings.Window.MinHeight,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:          app.startup,
		OnShutdown:         app.shutdown,
		Bind:               []interface{}{app},
		LogLevel:           logLevel,
		LogLevelProduction: logger.ERROR,
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
}
