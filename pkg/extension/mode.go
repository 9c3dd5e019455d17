// SPDX-License-Identifier: MPL-2.0

package extension

import "strings"

const (
	// ModeProduction is the normal operating mode. Every extension that
	// declares no metadata is assumed to load in this mode only.
	ModeProduction Mode = 1 << iota
	// ModeDevelopment enables host-development helpers (eval-style and
	// introspection extensions) that have no place on a live deployment.
	ModeDevelopment
	// ModePluginDev enables extensions that assist with authoring and
	// debugging other extensions.
	ModePluginDev
)

// Mode is a bitmask of runtime contexts. The host's active mode is fixed
// at process start and never changes; an extension's declared mode set
// says which contexts permit loading it.
type Mode uint8

// modeNames maps each defined bit to its canonical name, in bit order.
// Iteration over this slice is the single source of naming truth for
// Names and String.
var modeNames = []struct {
	bit  Mode
	name string
}{
	{ModeProduction, "PRODUCTION"},
	{ModeDevelopment, "DEVELOPMENT"},
	{ModePluginDev, "PLUGIN_DEV"},
}

// Includes reports whether m and other share at least one mode bit.
// This is the eligibility predicate: an extension declaring modes m is
// eligible under active mode a exactly when m.Includes(a).
func (m Mode) Includes(other Mode) bool {
	return m&other != 0
}

// Names returns the canonical names of the bits set in m, in bit order.
// Undefined bits are ignored.
func (m Mode) Names() []string {
	names := make([]string, 0, len(modeNames))
	for _, mn := range modeNames {
		if m&mn.bit != 0 {
			names = append(names, mn.name)
		}
	}
	return names
}

// String returns the pipe-joined names of the bits set in m, or "NONE"
// for the zero value.
func (m Mode) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}
