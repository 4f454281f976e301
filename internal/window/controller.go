// Package window owns the main window's lifecycle and geometry
// constraints. The live handle never leaves this package; command
// handlers request window operations through the Controller, which
// forwards them onto the event-loop thread.
package window

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Config describes the main window. Set once during startup.
type Config struct {
	MinWidth   int
	MinHeight  int
	Title      string
	Identifier string
}

// CreationError reports that the platform could not allocate a window,
// or that the requested configuration is unusable. Fatal at startup.
type CreationError struct {
	Reason string
	Err    error
}

func (e *CreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("window creation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("window creation failed: %s", e.Reason)
}

func (e *CreationError) Unwrap() error { return e.Err }

// ConstraintError reports a rejected geometry operation: a stale
// handle or non-positive dimensions.
type ConstraintError struct {
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("window constraint rejected: %s", e.Reason)
}

// Handle identifies the live main window. Opaque outside this package;
// only the Controller may act on it.
type Handle struct {
	id    string
	stale bool
}

// ID returns the handle's identifier, for logging.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Controller is the sole owner of the main window. It exposes a single
// live handle at a time and is the only component permitted to destroy
// it. Geometry operations recorded before the runtime context attaches
// are replayed once it does, so constraints hold for the window's
// entire lifetime.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	handle *Handle
	ctx    context.Context // event-loop runtime context, nil until Attach

	minWidth  int
	minHeight int
}

// NewController creates a controller with no live window.
func NewController() *Controller {
	return &Controller{}
}

// CreateMainWindow validates the configuration, probes the platform,
// and allocates the single live handle.
func (c *Controller) CreateMainWindow(cfg Config) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil && !c.handle.stale {
		return nil, &CreationError{Reason: "main window already exists"}
	}
	if cfg.MinWidth <= 0 || cfg.MinHeight <= 0 {
		return nil, &CreationError{
			Reason: fmt.Sprintf("minimum size must be positive, got %dx%d", cfg.MinWidth, cfg.MinHeight),
		}
	}
	if cfg.Title == "" {
		return nil, &CreationError{Reason: "window title is required"}
	}
	if err := probeDisplay(); err != nil {
		return nil, &CreationError{Reason: "no display surface available", Err: err}
	}

	c.cfg = cfg
	c.minWidth = cfg.MinWidth
	c.minHeight = cfg.MinHeight
	c.handle = &Handle{id: uuid.New().String()}

	log.Printf("[window] created main window %s (min %dx%d)", c.handle.id, c.minWidth, c.minHeight)
	return c.handle, nil
}

// Attach binds the event-loop runtime context and replays the recorded
// geometry onto the live window.
func (c *Controller) Attach(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctx = ctx
	if c.handle == nil || c.handle.stale {
		return
	}
	setMinSize(ctx, c.minWidth, c.minHeight)
	setTitle(ctx, c.cfg.Title)
}

// ApplyMinimumSize updates the window's minimum-size constraint. The
// constraint holds until explicitly reset through this method.
func (c *Controller) ApplyMinimumSize(h *Handle, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkHandleLocked(h); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return &ConstraintError{Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", width, height)}
	}

	c.minWidth = width
	c.minHeight = height
	if c.ctx != nil {
		setMinSize(c.ctx, width, height)
	}
	return nil
}

// Resize requests a new window size, clamped to the minimum
// constraint.
func (c *Controller) Resize(h *Handle, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkHandleLocked(h); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return &ConstraintError{Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", width, height)}
	}

	if width < c.minWidth {
		width = c.minWidth
	}
	if height < c.minHeight {
		height = c.minHeight
	}
	if c.ctx != nil {
		setSize(c.ctx, width, height)
	}
	return nil
}

// MinimumSize returns the current minimum-size constraint.
func (c *Controller) MinimumSize() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minWidth, c.minHeight
}

// Handle returns the live handle, or nil when no window exists.
func (c *Controller) Handle() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil || c.handle.stale {
		return nil
	}
	return c.handle
}

// RequestQuit asks the platform to close the window and exit the event
// loop. No-op before the runtime context attaches.
func (c *Controller) RequestQuit() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	if ctx != nil {
		quitApp(ctx)
	}
}

// Destroy releases the handle. Subsequent geometry operations on it
// fail with ConstraintError.
func (c *Controller) Destroy(h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h == nil || c.handle != h {
		return
	}
	h.stale = true
	c.handle = nil
	log.Printf("[window] destroyed main window %s", h.id)
}

func (c *Controller) checkHandleLocked(h *Handle) error {
	if h == nil || h.stale || c.handle != h {
		return &ConstraintError{Reason: "stale window handle"}
	}
	return nil
}
