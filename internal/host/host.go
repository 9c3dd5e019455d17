// SPDX-License-Identifier: MPL-2.0

package host

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"relaybot/pkg/extension"
)

// Compile-time check that Host satisfies the extension contract.
var _ extension.Host = (*Host)(nil)

type (
	// Host is the relay bot instance extensions register against.
	Host struct {
		logger     *log.Logger
		dispatcher *Dispatcher
		registry   registry

		mu       sync.RWMutex
		commands map[string]extension.CommandHandler
	}

	// CommandCollisionError is returned when two extensions register the
	// same command name.
	CommandCollisionError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *CommandCollisionError) Error() string {
	return fmt.Sprintf("command name collision: %q is already registered", e.Name)
}

// New creates a Host with the standard relay event names pre-registered.
func New(logger *log.Logger) *Host {
	return &Host{
		logger:     logger,
		dispatcher: NewDispatcher(logger, "message_received", "thread_opened", "thread_closed"),
		commands:   make(map[string]extension.CommandHandler),
	}
}

// Logger returns the logger extensions should use.
func (h *Host) Logger() *log.Logger {
	return h.logger
}

// Dispatcher returns the host event system.
func (h *Host) Dispatcher() extension.Dispatcher {
	return h.dispatcher
}

// RegisterCommand binds a prefix command name to a handler.
func (h *Host) RegisterCommand(name string, fn extension.CommandHandler) error {
	if name == "" {
		return fmt.Errorf("empty command name")
	}
	if fn == nil {
		return fmt.Errorf("nil handler for command %q", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.commands[name]; exists {
		return &CommandCollisionError{Name: name}
	}
	h.commands[name] = fn
	return nil
}

// Command returns the handler registered under name.
func (h *Host) Command(name string) (extension.CommandHandler, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.commands[name]
	return fn, ok
}

// CommandNames returns all registered command names, sorted.
func (h *Host) CommandNames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := maps.Keys(h.commands)
	slices.Sort(names)
	return names
}
