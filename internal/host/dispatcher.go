// SPDX-License-Identifier: MPL-2.0

package host

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"relaybot/pkg/extension"
)

type (
	// Dispatcher delivers named events to registered handlers. Blocking
	// handlers run first in priority order and may consume the event;
	// the remaining handlers then run concurrently. Handler errors are
	// logged and never propagate to the dispatching caller.
	Dispatcher struct {
		logger *log.Logger

		mu       sync.RWMutex
		known    map[string]bool
		handlers map[string][]extension.Handler
		blocking map[string][]blockingEntry
	}

	// blockingEntry pairs a blocking handler with its priority. The
	// per-event slice is kept sorted by priority (lowest first).
	blockingEntry struct {
		priority int
		fn       extension.BlockingHandler
	}
)

// NewDispatcher creates a Dispatcher with the given event names
// pre-registered.
func NewDispatcher(logger *log.Logger, eventNames ...string) *Dispatcher {
	d := &Dispatcher{
		logger:   logger,
		known:    make(map[string]bool),
		handlers: make(map[string][]extension.Handler),
		blocking: make(map[string][]blockingEntry),
	}
	d.RegisterEvents(eventNames...)
	return d
}

// RegisterEvents declares event names. Registration and dispatch of
// undeclared names still works but logs a warning, because an unknown
// name is far more likely a typo than a new event.
func (d *Dispatcher) RegisterEvents(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range names {
		d.known[name] = true
	}
}

// RegisterHandler attaches a non-blocking handler to an event.
func (d *Dispatcher) RegisterHandler(event string, fn extension.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warnUnknownLocked(event, "register handler")
	d.handlers[event] = append(d.handlers[event], fn)
}

// RegisterBlockingHandler attaches a blocking handler with the given
// priority; lower priorities run first.
func (d *Dispatcher) RegisterBlockingHandler(event string, priority int, fn extension.BlockingHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warnUnknownLocked(event, "register blocking handler")

	entries := append(d.blocking[event], blockingEntry{priority: priority, fn: fn})
	// Stable keeps registration order among equal priorities.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	d.blocking[event] = entries
}

// Dispatch delivers ev to its handlers. Blocking handlers run first in
// priority order; one returning handled=true consumes the event and the
// non-blocking handlers never see it. Non-blocking handlers then run
// concurrently, and Dispatch waits for all of them before returning.
func (d *Dispatcher) Dispatch(ctx context.Context, ev extension.Event) {
	d.mu.RLock()
	d.warnUnknownLocked(ev.Name, "dispatch")
	blocking := make([]blockingEntry, len(d.blocking[ev.Name]))
	copy(blocking, d.blocking[ev.Name])
	handlers := make([]extension.Handler, len(d.handlers[ev.Name]))
	copy(handlers, d.handlers[ev.Name])
	d.mu.RUnlock()

	for _, entry := range blocking {
		handled, err := entry.fn(ctx, ev)
		if err != nil {
			d.logger.Error("blocking event handler failed", "event", ev.Name, "error", err)
			continue
		}
		if handled {
			d.logger.Debug("event consumed by blocking handler", "event", ev.Name)
			return
		}
	}

	var wg sync.WaitGroup
	for _, fn := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx, ev); err != nil {
				d.logger.Error("event handler failed", "event", ev.Name, "error", err)
			}
		}()
	}
	wg.Wait()
}

// warnUnknownLocked logs when an event name was never declared. Callers
// must hold at least a read lock.
func (d *Dispatcher) warnUnknownLocked(event, during string) {
	if !d.known[event] {
		d.logger.Warn("unregistered event name, possible typo", "event", event, "during", during)
	}
}
