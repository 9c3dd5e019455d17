// SPDX-License-Identifier: MPL-2.0

package discovery

import "relaybot/pkg/extension"

// Decision is the outcome of reconciling an extension's declared modes
// against the host's active mode.
type Decision struct {
	// Eligible reports whether the extension may activate right now.
	Eligible bool
	// ModeNames lists the modes the extension declares itself loadable
	// under, independent of the current active mode. Diagnostic only.
	ModeNames []string
}

// Decide computes the activation decision for declared metadata under the
// given active mode. Pure function over two bitmasks; no side effects.
func Decide(meta extension.Metadata, active extension.Mode) Decision {
	return Decision{
		Eligible:  meta.LoadIfMode.Includes(active),
		ModeNames: meta.LoadIfMode.Names(),
	}
}
