package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"github.com/arvid-olsson/workbench-desktop/internal/bridge"
)

// openURL is a test hook over the platform's default URL launcher.
var openURL = browser.OpenURL

// commands returns the command set registered at startup. The bridge
// mechanism is the contract here; these payloads are the shell's
// built-in operations.
func (a *App) commands() []bridge.Command {
	return []bridge.Command{
		{Name: "greet", Handler: greetHandler},
		{Name: "get_app_version", Handler: versionHandler},
		// Launching the platform handler can block on slow desktops,
		// so it runs on a worker off the event-loop thread.
		{Name: "open_external", Handler: openExternalHandler, Blocking: true},
	}
}

// greetHandler takes a name and returns a greeting string.
func greetHandler(_ context.Context, args bridge.Args) (any, error) {
	name, _ := args.String("name")
	if name == "" {
		return nil, fmt.Errorf("missing required argument: name")
	}
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name), nil
}

// versionHandler returns the semantic version baked in at build time.
// Idempotent within a process run.
func versionHandler(context.Context, bridge.Args) (any, error) {
	return Version, nil
}

// openExternalHandler hands a URL to the platform's default handler.
// Launcher failures are reported as handler failures, never crashes.
func openExternalHandler(_ context.Context, args bridge.Args) (any, error) {
	raw, _ := args.String("url")
	if raw == "" {
		return nil, fmt.Errorf("missing required argument: url")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("refusing to open url with scheme %q", parsed.Scheme)
	}

	if err := openURL(raw); err != nil {
		return nil, fmt.Errorf("open %s: %w", raw, err)
	}
	return nil, nil
}
