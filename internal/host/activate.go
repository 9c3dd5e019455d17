// SPDX-License-Identifier: MPL-2.0

package host

import (
	"fmt"
	"iter"
	"sync"

	"relaybot/internal/discovery"
)

// Activated records one extension whose Setup ran successfully.
type Activated struct {
	// Name is the extension's qualified name.
	Name string
	// Path is the file the extension was loaded from.
	Path string
	// ModeNames lists the modes the extension declared itself loadable under.
	ModeNames []string
}

// registry tracks activated extensions. Guarded by its own lock so
// Activate can run while handlers read the command table.
type registry struct {
	mu      sync.RWMutex
	entries []Activated
}

// Activate consumes discovery results and invokes Setup for every
// eligible extension. A panicking Setup is isolated and logged; it never
// affects other extensions or the host. Returns the extensions that
// activated, in discovery order.
func (h *Host) Activate(results iter.Seq[discovery.Result]) []Activated {
	var activated []Activated
	for res := range results {
		if !res.Eligible {
			h.logger.Debug("extension not eligible in current mode",
				"name", res.Name, "modes", res.ModeNames)
			continue
		}
		if err := h.runSetup(res); err != nil {
			h.logger.Error("extension setup failed", "name", res.Name, "error", err)
			continue
		}
		h.logger.Info("extension activated", "name", res.Name)
		activated = append(activated, Activated{
			Name:      res.Name,
			Path:      res.Path,
			ModeNames: res.ModeNames,
		})
	}

	h.registry.mu.Lock()
	h.registry.entries = append(h.registry.entries, activated...)
	h.registry.mu.Unlock()
	return activated
}

// Extensions returns a copy of the activated-extension registry.
func (h *Host) Extensions() []Activated {
	h.registry.mu.RLock()
	defer h.registry.mu.RUnlock()
	out := make([]Activated, len(h.registry.entries))
	copy(out, h.registry.entries)
	return out
}

// runSetup calls the extension's entry point, converting a panic into an
// error confined to this extension.
func (h *Host) runSetup(res discovery.Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in setup: %v", r)
		}
	}()
	res.Setup(h)
	return nil
}
