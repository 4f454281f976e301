package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/arvid-olsson/workbench-desktop/internal/bridge"
	"github.com/arvid-olsson/workbench-desktop/internal/lifecycle"
	"github.com/arvid-olsson/workbench-desktop/internal/window"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

const (
	// resultEvent carries settled responses for blocking commands and
	// shutdown reports. The response ID matches the request's.
	resultEvent = "command:result"
	// readyEvent signals that the command bridge is reachable.
	readyEvent = "app:ready"
)

// emitEvent is a test hook over the Wails event emitter.
var emitEvent = wailsruntime.EventsEmit

// App is the host-side object bound to the UI surface. All host
// functionality is reached through Invoke; the dispatcher is the only
// path into it.
type App struct {
	ctx context.Context

	settings   Settings
	registry   *bridge.Registry
	dispatcher *bridge.Dispatcher
	window     *window.Controller
	lifecycle  *lifecycle.Controller
}

// NewApp wires the registry, dispatcher, window controller and
// lifecycle controller together.
func NewApp(settings Settings) *App {
	a := &App{settings: settings}
	a.registry = bridge.NewRegistry()
	a.dispatcher = bridge.NewDispatcher(a.registry, a.emitResult, bridge.Config{
		MaxWorkers: settings.Bridge.MaxWorkers,
	})
	a.window = window.NewController()
	a.lifecycle = lifecycle.New(a.window, a.registry, a.dispatcher, settings.Bridge.DrainTimeout())
	return a
}

// bootstrap runs the startup transitions that precede the event loop:
// create the window, then register the command set. Errors here are
// fatal; main aborts startup.
func (a *App) bootstrap() error {
	cfg := window.Config{
		MinWidth:   a.settings.Window.MinWidth,
		MinHeight:  a.settings.Window.MinHeight,
		Title:      a.settings.Window.Title,
		Identifier: "main",
	}
	if err := a.lifecycle.CreateWindow(cfg); err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	if err := a.lifecycle.RegisterCommands(a.commands()...); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

// startup is called when the event loop starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.window.Attach(ctx)
	if err := a.lifecycle.Run(); err != nil {
		log.Printf("[lifecycle] run: %v", err)
		return
	}
	emitEvent(ctx, readyEvent, Version)
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	saveCurrentGeometry(ctx)
	if err := a.lifecycle.Shutdown(ctx); err != nil {
		log.Printf("[lifecycle] shutdown: %v", err)
	}
}

// emitResult is the dispatcher's completion sink.
func (a *App) emitResult(resp bridge.Response) {
	if a.ctx == nil {
		log.Printf("[bridge] dropping result %s: runtime not attached", resp.ID)
		return
	}
	emitEvent(a.ctx, resultEvent, resp)
}

// Invoke is the single wire entry point for the UI surface. The
// payload is the invocation envelope: {id, command, arguments}.
func (a *App) Invoke(payload map[string]any) bridge.Response {
	req := normalizeRequest(payload)
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.dispatcher.Dispatch(ctx, req)
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// ListCommands returns the registered command names, for UI discovery.
func (a *App) ListCommands() []string {
	return a.registry.Names()
}

// normalizeRequest maps the UI's JSON envelope onto a bridge request.
// "args" is accepted as an alias for "arguments".
func normalizeRequest(payload map[string]any) bridge.Request {
	if payload == nil {
		payload = map[string]any{}
	}
	args := payload["arguments"]
	if args == nil {
		args = payload["args"]
	}
	return bridge.Request{
		ID:      asString(payload["id"]),
		Command: asString(payload["command"]),
		Args:    bridge.ArgsFrom(args),
	}
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
