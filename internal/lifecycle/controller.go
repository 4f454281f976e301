// Package lifecycle orchestrates the host shell's startup and shutdown
// sequence: create window, register commands, enter the event loop,
// drain, terminate.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/arvid-olsson/workbench-desktop/internal/bridge"
	"github.com/arvid-olsson/workbench-desktop/internal/window"
)

// Phase is the controller's position in the startup/shutdown sequence.
type Phase int

const (
	Uninitialized Phase = iota
	WindowCreated
	CommandsRegistered
	Running
	ShuttingDown
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case WindowCreated:
		return "window_created"
	case CommandsRegistered:
		return "commands_registered"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Controller drives the application through its phases in order.
// Startup-time failures (window creation, duplicate commands) are
// returned to the caller, which must abort: there is no degraded mode.
type Controller struct {
	mu           sync.Mutex
	phase        Phase
	window       *window.Controller
	registry     *bridge.Registry
	dispatcher   *bridge.Dispatcher
	handle       *window.Handle
	drainTimeout time.Duration
}

// New creates a controller in the Uninitialized phase.
func New(win *window.Controller, reg *bridge.Registry, disp *bridge.Dispatcher, drainTimeout time.Duration) *Controller {
	if drainTimeout <= 0 {
		drainTimeout = 5 * time.Second
	}
	return &Controller{
		window:       win,
		registry:     reg,
		dispatcher:   disp,
		drainTimeout: drainTimeout,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CreateWindow performs the Uninitialized -> WindowCreated transition.
// A window.CreationError here is fatal to startup.
func (c *Controller) CreateWindow(cfg window.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.advanceLocked(Uninitialized, WindowCreated); err != nil {
		return err
	}

	h, err := c.window.CreateMainWindow(cfg)
	if err != nil {
		c.phase = Uninitialized
		return err
	}
	c.handle = h
	return nil
}

// RegisterCommands performs WindowCreated -> CommandsRegistered. An
// empty command set is valid; a duplicate name is a programming error
// and fatal at startup.
func (c *Controller) RegisterCommands(cmds ...bridge.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.advanceLocked(WindowCreated, CommandsRegistered); err != nil {
		return err
	}

	for _, cmd := range cmds {
		if err := c.registry.Register(cmd); err != nil {
			c.phase = WindowCreated
			return err
		}
	}
	log.Printf("[lifecycle] registered %d command(s)", len(cmds))
	return nil
}

// Run performs CommandsRegistered -> Running. The dispatcher becomes
// reachable from the UI surface only from this point onward.
func (c *Controller) Run() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.advanceLocked(CommandsRegistered, Running); err != nil {
		return err
	}
	c.dispatcher.Start()
	log.Printf("[lifecycle] running")
	return nil
}

// Shutdown performs Running -> ShuttingDown -> Terminated: stop
// accepting requests, drain in-flight ones up to the configured
// deadline, release the window handle. Safe to call again once
// shutdown has begun.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.phase >= ShuttingDown {
		c.mu.Unlock()
		return nil
	}
	if err := c.advanceLocked(Running, ShuttingDown); err != nil {
		c.mu.Unlock()
		return err
	}
	handle := c.handle
	c.mu.Unlock()

	drain := c.drainTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < drain {
			drain = remaining
		}
	}
	c.dispatcher.Close(drain)

	if handle != nil {
		c.window.Destroy(handle)
	}

	c.mu.Lock()
	c.phase = Terminated
	c.handle = nil
	c.mu.Unlock()

	log.Printf("[lifecycle] terminated")
	return nil
}

func (c *Controller) advanceLocked(from, to Phase) error {
	if c.phase != from {
		return fmt.Errorf("invalid transition to %s: phase is %s, want %s", to, c.phase, from)
	}
	c.phase = to
	return nil
}
