// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"plugin"
)

type (
	// Unit is an opaque handle to a loaded candidate, inspected by the
	// contract validator via symbol lookup.
	Unit interface {
		// Lookup returns the exported symbol with the given name, or an
		// error when the unit does not export it.
		Lookup(symbol string) (any, error)
	}

	// Loader brings a candidate into the process as an isolated unit.
	// Implementations must never panic: any failure, including a panic
	// raised by the candidate's own initialization, is converted into an
	// error so one broken extension cannot abort the scan.
	Loader interface {
		Load(name, path string) (Unit, error)
	}

	// pluginLoader loads candidates through the platform dynamic-library
	// mechanism (stdlib plugin). Loading is idempotent per path for the
	// lifetime of the process; units are never unloaded.
	pluginLoader struct{}

	pluginUnit struct {
		p *plugin.Plugin
	}
)

// NewPluginLoader returns the production Loader backed by stdlib plugin.
func NewPluginLoader() Loader {
	return pluginLoader{}
}

func (pluginLoader) Load(name, path string) (unit Unit, err error) {
	// plugin.Open runs the candidate's init functions; a panic there
	// must stay confined to this candidate.
	defer func() {
		if r := recover(); r != nil {
			unit = nil
			err = fmt.Errorf("panic while loading %s: %v", name, r)
		}
	}()

	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return pluginUnit{p: p}, nil
}

func (u pluginUnit) Lookup(symbol string) (any, error) {
	return u.p.Lookup(symbol)
}
