package bridge

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Handler implements a command's behavior. A nil payload on success is
// surfaced to the caller as a unit result.
type Handler func(ctx context.Context, args Args) (any, error)

// Command describes one registered host-side operation. Blocking
// commands perform work that must not run on the event-loop thread;
// the dispatcher executes them on a worker and delivers the settled
// response through the completion sink.
type Command struct {
	Name     string
	Handler  Handler
	Blocking bool
}

// Registry maps command names to handlers. It is populated once during
// startup, before the dispatcher becomes reachable from the UI, and is
// read-only thereafter.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command to the registry. Registering a name twice
// fails with *DuplicateCommandError.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name is required")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name]; exists {
		return &DuplicateCommandError{Name: cmd.Name}
	}
	r.commands[cmd.Name] = cmd
	return nil
}

// Resolve returns the command registered under name, or
// *UnknownCommandError if absent.
func (r *Registry) Resolve(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	if !ok {
		return Command{}, &UnknownCommandError{Name: name}
	}
	return cmd, nil
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
