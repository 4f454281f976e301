package window

import (
	"fmt"
	"os"
	goruntime "runtime"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Package-level hooks over the platform window subsystem. Tests swap
// these to observe geometry operations without a live webview.
var (
	setMinSize   = wailsruntime.WindowSetMinSize
	setSize      = wailsruntime.WindowSetSize
	setTitle     = wailsruntime.WindowSetTitle
	quitApp      = wailsruntime.Quit
	probeDisplay = defaultProbeDisplay
)

// defaultProbeDisplay checks that a display surface is available
// before window allocation is attempted. On Linux a missing DISPLAY
// and WAYLAND_DISPLAY means there is nothing to render to.
func defaultProbeDisplay() error {
	if goruntime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return fmt.Errorf("neither DISPLAY nor WAYLAND_DISPLAY is set")
	}
	return nil
}
