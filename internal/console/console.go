// SPDX-License-Identifier: MPL-2.0

// Package console provides the optional SSH admin console: a loopback
// Wish server that prints a snapshot of the running host (active mode,
// activated extensions, registered commands) to each session and closes
// it. It is read-only and disabled unless config enables it.
package console

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

const (
	// StateCreated indicates the console has been created but not started.
	StateCreated State = iota
	// StateStarting indicates the console is starting.
	StateStarting
	// StateRunning indicates the console is accepting connections.
	StateRunning
	// StateStopped indicates the console has stopped (terminal state).
	StateStopped
	// StateFailed indicates the console failed to start (terminal state).
	StateFailed
)

type (
	// State represents the lifecycle state of the console.
	State int32

	// Snapshot is the host state rendered to each console session.
	Snapshot struct {
		// Mode is the active runtime mode string.
		Mode string
		// Extensions lists activated extension names.
		Extensions []string
		// Commands lists registered command names.
		Commands []string
	}

	// SnapshotFunc supplies a fresh snapshot per session.
	SnapshotFunc func() Snapshot

	// Config holds immutable console configuration.
	Config struct {
		// Host is the address to bind to (default: 127.0.0.1). The
		// console carries no authentication, so keep it loopback-only.
		Host string
		// Port is the port to listen on (0 = auto-select).
		Port int
		// ShutdownTimeout bounds graceful shutdown (default: 5s).
		ShutdownTimeout time.Duration
	}

	// Console is a single-use admin console server: once stopped or
	// failed, create a new instance.
	Console struct {
		cfg      Config
		snapshot SnapshotFunc
		logger   *log.Logger

		state atomic.Int32

		mu       sync.Mutex
		srv      *ssh.Server
		listener net.Listener
		addr     string
		wg       sync.WaitGroup
	}
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// New creates a Console. snapshot must be non-nil.
func New(cfg Config, snapshot SnapshotFunc, logger *log.Logger) (*Console, error) {
	if snapshot == nil {
		return nil, errors.New("nil snapshot source")
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Console{cfg: cfg, snapshot: snapshot, logger: logger}, nil
}

// State returns the current lifecycle state.
func (c *Console) State() State {
	return State(c.state.Load())
}

// Addr returns the bound address once the console is running.
func (c *Console) Addr() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addr
}

// Start binds the listener and begins serving sessions in the
// background. It returns once the console is listening or has failed.
func (c *Console) Start(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("cannot start console in state %s", c.State())
	}

	addr := net.JoinHostPort(c.cfg.Host, fmt.Sprintf("%d", c.cfg.Port))
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		c.state.Store(int32(StateFailed))
		return fmt.Errorf("console listen on %s: %w", addr, err)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithMiddleware(c.snapshotMiddleware()),
	)
	if err != nil {
		_ = listener.Close()
		c.state.Store(int32(StateFailed))
		return fmt.Errorf("create console server: %w", err)
	}

	c.mu.Lock()
	c.srv = srv
	c.listener = listener
	c.addr = listener.Addr().String()
	c.mu.Unlock()

	c.state.Store(int32(StateRunning))
	c.logger.Info("admin console listening", "address", c.addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := srv.Serve(listener); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			c.logger.Error("console serve failed", "error", err)
			c.state.Store(int32(StateFailed))
		}
	}()

	return nil
}

// Stop gracefully shuts the console down. Safe to call in any state;
// repeated calls are no-ops.
func (c *Console) Stop() error {
	switch c.State() {
	case StateStopped, StateFailed, StateCreated:
		c.state.Store(int32(StateStopped))
		return nil
	}

	c.mu.Lock()
	srv := c.srv
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.ShutdownTimeout)
	defer cancel()

	var err error
	if srv != nil {
		if err = srv.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			err = fmt.Errorf("console shutdown: %w", err)
		} else {
			err = nil
		}
	}
	c.wg.Wait()
	c.state.Store(int32(StateStopped))
	return err
}

// snapshotMiddleware writes the host snapshot to the session and ends
// it. Sessions are read-only; no input is consumed.
func (c *Console) snapshotMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			snap := c.snapshot()
			fmt.Fprintf(sess, "relaybot admin console\n")
			fmt.Fprintf(sess, "mode: %s\n\n", snap.Mode)

			fmt.Fprintf(sess, "extensions (%d):\n", len(snap.Extensions))
			for _, name := range snap.Extensions {
				fmt.Fprintf(sess, "  %s\n", name)
			}

			fmt.Fprintf(sess, "\ncommands (%d):\n", len(snap.Commands))
			for _, name := range snap.Commands {
				fmt.Fprintf(sess, "  %s\n", name)
			}

			c.logger.Debug("console session served", "user", sess.User())
			next(sess)
		}
	}
}
