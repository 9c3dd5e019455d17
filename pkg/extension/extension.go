// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"context"

	"github.com/charmbracelet/log"
)

const (
	// SetupSymbol is the exported symbol name every extension must provide.
	SetupSymbol = "Setup"
	// MetadataSymbol is the exported symbol name of the optional Metadata
	// variable an extension may declare.
	MetadataSymbol = "ExtMetadata"
)

type (
	// Metadata declares which runtime modes permit loading an extension.
	// Authors attach it as an exported variable:
	//
	//	var ExtMetadata = extension.Metadata{
	//		LoadIfMode: extension.ModeProduction | extension.ModeDevelopment,
	//	}
	//
	// Metadata is read-only data extracted during discovery; the host never
	// mutates it.
	Metadata struct {
		// LoadIfMode is the set of modes under which the extension may load.
		LoadIfMode Mode
	}

	// SetupFunc is the required entry point signature. Setup performs
	// fire-and-forget registration against the host; its return is not
	// inspected and it must not block.
	SetupFunc func(Host)

	// Message is a single relayed chat message handed to command handlers.
	Message struct {
		// Channel identifies the conversation the message arrived on.
		Channel string
		// Author identifies the sender.
		Author string
		// Content is the message body with the command prefix stripped.
		Content string
	}

	// CommandHandler handles one invocation of a registered command.
	CommandHandler func(ctx context.Context, msg Message) error

	// Event is a named payload dispatched through the host's event system.
	Event struct {
		// Name is a registered event name (see Dispatcher.RegisterEvents).
		Name string
		// Payload is event-specific data; handlers assert its shape.
		Payload any
	}

	// Handler is a non-blocking event handler. All handlers for an event
	// run for every dispatch; errors are logged, never propagated.
	Handler func(ctx context.Context, ev Event) error

	// BlockingHandler runs before non-blocking handlers, in priority order
	// (lowest first). Returning handled=true consumes the event and stops
	// further dispatch.
	BlockingHandler func(ctx context.Context, ev Event) (handled bool, err error)

	// Dispatcher is the host event system surface available to extensions.
	Dispatcher interface {
		// RegisterEvents declares event names so later registrations and
		// dispatches of unknown names can be flagged as likely typos.
		RegisterEvents(names ...string)
		// RegisterHandler attaches a non-blocking handler to an event.
		RegisterHandler(event string, fn Handler)
		// RegisterBlockingHandler attaches a blocking handler with the
		// given priority (lowest runs first).
		RegisterBlockingHandler(event string, priority int, fn BlockingHandler)
		// Dispatch delivers an event to all registered handlers.
		Dispatch(ctx context.Context, ev Event)
	}

	// Host is the surface the relaybot host hands to each extension's
	// Setup. Extensions must not retain goroutines beyond what their
	// registered handlers need.
	Host interface {
		// Logger returns a logger scoped for extension use.
		Logger() *log.Logger
		// Dispatcher returns the host event system.
		Dispatcher() Dispatcher
		// RegisterCommand binds a prefix command name to a handler. It
		// fails when the name is already taken by another extension.
		RegisterCommand(name string, h CommandHandler) error
	}
)

// DefaultMetadata is the metadata substituted for extensions that declare
// none: production-only loading.
func DefaultMetadata() Metadata {
	return Metadata{LoadIfMode: ModeProduction}
}
