// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"relaybot/pkg/extension"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	want := DefaultConfig()
	if cfg.Bot.Prefix != want.Bot.Prefix {
		t.Errorf("Bot.Prefix = %q, want %q", cfg.Bot.Prefix, want.Bot.Prefix)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, LogLevelInfo)
	}
	if cfg.Console.Enabled {
		t.Error("console should default to disabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[bot]
prefix = "!"
plugins_dir = "/opt/relaybot/plugins"

[dev.mode]
develop = true

[log]
level = "debug"
`
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Bot.Prefix != "!" {
		t.Errorf("Bot.Prefix = %q, want %q", cfg.Bot.Prefix, "!")
	}
	if cfg.Bot.PluginsDir != "/opt/relaybot/plugins" {
		t.Errorf("Bot.PluginsDir = %q", cfg.Bot.PluginsDir)
	}
	if !cfg.Dev.Mode.Develop {
		t.Error("dev.mode.develop should be true")
	}
	if cfg.Dev.Mode.PluginDev {
		t.Error("dev.mode.plugin_dev should keep its default (false)")
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want override %q", got, dir)
	}

	// Load with no explicit paths must honor the override, not the
	// platform config dir.
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte("[bot]\nprefix = \"!!\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Bot.Prefix != "!!" {
		t.Errorf("Bot.Prefix = %q, want %q from overridden dir", cfg.Bot.Prefix, "!!")
	}
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	if err == nil {
		t.Fatal("Load() with missing explicit config file should fail")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RELAYBOT_LOG_LEVEL", "warn")
	t.Setenv("RELAYBOT_BOT_PREFIX", ">>")

	cfg, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("Log.Level = %q, want warn (env override)", cfg.Log.Level)
	}
	if cfg.Bot.Prefix != ">>" {
		t.Errorf("Bot.Prefix = %q, want >> (env override)", cfg.Bot.Prefix)
	}
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	t.Setenv("RELAYBOT_LOG_LEVEL", "loud")

	_, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("Load() should reject an unknown log level")
	}
}

func TestLoadRejectsBlankPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte("[bot]\nprefix = \"  \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidBotPrefix) {
		t.Errorf("Load() = %v, want ErrInvalidBotPrefix", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Error("Load() with canceled context should fail")
	}
}

func TestLogLevelValidate(t *testing.T) {
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if err := level.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", level, err)
		}
	}

	var invalidErr *InvalidLogLevelError
	err := LogLevel("verbose").Validate()
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Validate() = %v, want *InvalidLogLevelError", err)
	}
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Error("InvalidLogLevelError should wrap ErrInvalidLogLevel")
	}
}

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name      string
		develop   bool
		pluginDev bool
		want      extension.Mode
	}{
		{"defaults", false, false, extension.ModeProduction},
		{"develop", true, false, extension.ModeProduction | extension.ModeDevelopment},
		{"plugin dev", false, true, extension.ModeProduction | extension.ModePluginDev},
		{"both", true, true, extension.ModeProduction | extension.ModeDevelopment | extension.ModePluginDev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Dev.Mode.Develop = tt.develop
			cfg.Dev.Mode.PluginDev = tt.pluginDev
			if got := DetermineMode(cfg); got != tt.want {
				t.Errorf("DetermineMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
