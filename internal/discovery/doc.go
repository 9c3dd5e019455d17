// SPDX-License-Identifier: MPL-2.0

// Package discovery walks the plugins root, loads each candidate extension
// in isolation, and reports mode-gated activation decisions to the caller.
//
// This package intentionally combines four tightly coupled concerns:
//   - Identity resolution: mapping candidate paths to dotted qualified names
//   - Loading: bringing a candidate into the process via the platform
//     dynamic-library mechanism, with full fault isolation
//   - Contract validation: confirming the Setup entry point and extracting
//     declared metadata
//   - Decision: reconciling declared modes against the active runtime mode
//
// File organization:
//   - identity.go: Resolver (qualified names, privacy skip, suffix handling)
//   - loader.go: Loader/Unit abstraction and the plugin-backed loader
//   - validate.go: entry point and metadata extraction from loaded units
//   - decision.go: the pure eligibility function
//   - discovery.go: the lazy traversal composing the above
//
// Discovery never registers anything itself; it only yields decisions.
// Registration against the host is the caller's responsibility.
package discovery
