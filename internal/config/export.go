// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// envEntry describes one exported environment variable.
type envEntry struct {
	key     string // viper key, dot-separated
	comment string
	value   any
}

// envEntries lists every configurable key in export order. Keep this in
// sync with Config; TestEnvTemplateCoversAllKeys guards the pairing.
func envEntries() []envEntry {
	d := DefaultConfig()
	return []envEntry{
		{"bot.prefix", "chat command prefix", d.Bot.Prefix},
		{"bot.plugins_dir", "extension discovery root", d.Bot.PluginsDir},
		{"dev.mode.develop", "enable host-development extensions", d.Dev.Mode.Develop},
		{"dev.mode.plugin_dev", "enable extension-authoring helpers", d.Dev.Mode.PluginDev},
		{"log.level", "debug, info, warn, or error", d.Log.Level},
		{"console.enabled", "start the SSH admin console", d.Console.Enabled},
		{"console.host", "console listen address (keep loopback)", d.Console.Host},
		{"console.port", "console listen port", d.Console.Port},
	}
}

// ExportDefault renders the built-in default configuration as a TOML
// document. Output is deterministic: struct field order is fixed, so two
// exports of the same defaults are byte-identical.
func ExportDefault() ([]byte, error) {
	body, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Autogenerated default relaybot configuration.\n")
	b.WriteString("# Run 'relaybot config export-default' to regenerate.\n\n")
	b.Write(body)
	return []byte(b.String()), nil
}

// EnvTemplate renders a .env template listing every RELAYBOT_* override
// with its default value, one commented assignment per key.
func EnvTemplate() []byte {
	var b strings.Builder
	b.WriteString("# Autogenerated relaybot environment template.\n")
	b.WriteString("# Run 'relaybot config gen-env' to regenerate.\n")
	b.WriteString("# Uncomment a line to override the corresponding config key.\n\n")

	for _, e := range envEntries() {
		fmt.Fprintf(&b, "# %s\n", e.comment)
		fmt.Fprintf(&b, "#%s=%v\n\n", EnvVarName(e.key), e.value)
	}
	return []byte(b.String())
}

// EnvVarName maps a dot-separated config key to its environment variable
// name: "dev.mode.develop" becomes "RELAYBOT_DEV_MODE_DEVELOP".
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
