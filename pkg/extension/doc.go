// SPDX-License-Identifier: MPL-2.0

// Package extension defines the public contract between the relaybot host
// and its extensions: the runtime mode bitmask, the metadata an extension
// may declare, and the host surface handed to each extension's Setup entry
// point.
//
// An extension is a Go plugin (built with -buildmode=plugin) that exports:
//   - Setup — func(extension.Host), required; called once when the host
//     activates the extension.
//   - ExtMetadata — extension.Metadata variable, optional; declares which
//     runtime modes permit loading. Absent metadata means production-only.
//
// This package is imported by both the host and extension authors, so it
// must stay free of host-internal dependencies.
package extension
