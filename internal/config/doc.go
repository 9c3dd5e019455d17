// SPDX-License-Identifier: MPL-2.0

// Package config loads, validates, and exports relaybot configuration.
//
// Configuration is layered: built-in defaults, then an optional TOML file
// in the platform config directory, then RELAYBOT_* environment
// variables. The merged result is validated against an embedded CUE
// schema before use.
//
// The package also hosts the export tooling behind `relaybot config
// export-default` and `relaybot config gen-env`, which regenerate the
// default-config TOML and the .env template deterministically.
package config
