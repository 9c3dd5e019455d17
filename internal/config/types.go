// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"relaybot/pkg/extension"
)

const (
	// LogLevelDebug enables per-candidate discovery diagnostics.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn limits output to warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError limits output to errors.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidBotPrefix is returned when the command prefix is empty or whitespace.
	ErrInvalidBotPrefix = errors.New("invalid bot prefix")
	// ErrInvalidConsolePort is returned when the console port is out of range.
	ErrInvalidConsolePort = errors.New("invalid console port")
)

type (
	// LogLevel is the configured logging verbosity.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not
	// recognized. It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// BotConfig holds the relay bot's own settings.
	BotConfig struct {
		// Prefix is the chat command prefix extensions register under.
		Prefix string `mapstructure:"prefix" toml:"prefix"`
		// PluginsDir is the extension discovery root.
		PluginsDir string `mapstructure:"plugins_dir" toml:"plugins_dir"`
	}

	// ModeConfig toggles the non-production mode bits. Production is
	// always active and has no toggle.
	ModeConfig struct {
		// Develop enables host-development extensions.
		Develop bool `mapstructure:"develop" toml:"develop"`
		// PluginDev enables extension-authoring helpers.
		PluginDev bool `mapstructure:"plugin_dev" toml:"plugin_dev"`
	}

	// DevConfig groups development-only settings.
	DevConfig struct {
		Mode ModeConfig `mapstructure:"mode" toml:"mode"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level LogLevel `mapstructure:"level" toml:"level"`
	}

	// ConsoleConfig holds the optional SSH admin console settings.
	ConsoleConfig struct {
		// Enabled starts the console with `relaybot run`. Off by default.
		Enabled bool `mapstructure:"enabled" toml:"enabled"`
		// Host is the listen address; keep it loopback-only.
		Host string `mapstructure:"host" toml:"host"`
		// Port is the listen port.
		Port int `mapstructure:"port" toml:"port"`
	}

	// Config is the root relaybot configuration.
	Config struct {
		Bot     BotConfig     `mapstructure:"bot" toml:"bot"`
		Dev     DevConfig     `mapstructure:"dev" toml:"dev"`
		Log     LogConfig     `mapstructure:"log" toml:"log"`
		Console ConsoleConfig `mapstructure:"console" toml:"console"`
	}
)

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap supports errors.Is(err, ErrInvalidLogLevel).
func (e *InvalidLogLevelError) Unwrap() error {
	return ErrInvalidLogLevel
}

// Validate checks the log level against the closed set.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Validate checks constraints the CUE schema cannot express, such as
// whitespace-only prefixes, and re-checks the closed sets.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bot.Prefix) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBotPrefix, c.Bot.Prefix)
	}
	if err := c.Log.Level.Validate(); err != nil {
		return err
	}
	if c.Console.Port < 0 || c.Console.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidConsolePort, c.Console.Port)
	}
	return nil
}

// DefaultConfig returns the built-in defaults used when no config file
// exists. The export tooling serializes exactly this value.
func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Prefix:     "?",
			PluginsDir: "plugins",
		},
		Dev: DevConfig{
			Mode: ModeConfig{
				Develop:   false,
				PluginDev: false,
			},
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		Console: ConsoleConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    2222,
		},
	}
}

// DetermineMode computes the process-wide active mode from config: the
// production bit is always set; development and plugin-dev bits follow
// the dev.mode toggles. Read once at startup, immutable afterwards.
func DetermineMode(cfg *Config) extension.Mode {
	mode := extension.ModeProduction
	if cfg.Dev.Mode.Develop {
		mode |= extension.ModeDevelopment
	}
	if cfg.Dev.Mode.PluginDev {
		mode |= extension.ModePluginDev
	}
	return mode
}
