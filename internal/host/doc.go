// SPDX-License-Identifier: MPL-2.0

// Package host implements the relaybot host instance handed to each
// extension's Setup entry point: the prefix command registry, the named
// event dispatcher, and mode-gated activation of discovery results.
//
// The host owns the only shared mutable state in the extension system
// (the command and event registries); discovery itself never touches it.
package host
