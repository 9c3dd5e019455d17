// SPDX-License-Identifier: MPL-2.0

package console

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Mode:       "PRODUCTION",
		Extensions: []string{"plugins.a"},
		Commands:   []string{"close"},
	}
}

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	c, err := New(Config{Port: 0}, testSnapshot, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return c
}

func TestNewRequiresSnapshot(t *testing.T) {
	if _, err := New(Config{}, nil, log.New(io.Discard)); err == nil {
		t.Error("New() with nil snapshot source should fail")
	}
}

func TestConsoleLifecycle(t *testing.T) {
	c := newTestConsole(t)
	if c.State() != StateCreated {
		t.Fatalf("initial state = %s, want created", c.State())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	if c.State() != StateRunning {
		t.Errorf("state after Start = %s, want running", c.State())
	}
	if c.Addr() == "" {
		t.Error("Addr() empty after Start")
	}

	// Starting twice is rejected.
	if err := c.Start(ctx); err == nil {
		t.Error("second Start() should fail")
	}

	if err := c.Stop(); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}
	if c.State() != StateStopped {
		t.Errorf("state after Stop = %s, want stopped", c.State())
	}

	// Stop is idempotent.
	if err := c.Stop(); err != nil {
		t.Errorf("repeated Stop() returned error: %v", err)
	}
}

func TestConsoleStopWithoutStart(t *testing.T) {
	c := newTestConsole(t)
	if err := c.Stop(); err != nil {
		t.Errorf("Stop() before Start returned error: %v", err)
	}
	if c.State() != StateStopped {
		t.Errorf("state = %s, want stopped", c.State())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateCreated:  "created",
		StateStarting: "starting",
		StateRunning:  "running",
		StateStopped:  "stopped",
		StateFailed:   "failed",
		State(99):     "unknown",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
