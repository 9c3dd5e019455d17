// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for relaybot.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"relaybot/internal/config"
	"relaybot/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level output regardless of config.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "relaybot",
		Short: "A dynamically extensible chat relay bot",
		Long: TitleStyle.Render("relaybot") + SubtitleStyle.Render(" - A dynamically extensible chat relay bot") + `

relaybot relays conversations between chat channels and support staff.
Its behavior is extended at startup by discovering extensions (Go
plugins) under a configurable plugins directory; each extension declares
which runtime modes it may load under, and the active mode decides what
actually activates.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Drop compiled extensions (*.so) into the plugins directory
  2. Inspect what would load with: relaybot ext list
  3. Start the bot with: relaybot run`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/relaybot/config.toml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(extCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		// fang prints the bare error; actionable errors carry
		// suggestions (and, with --verbose, the chain) worth surfacing.
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		}

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render through Format; verbose mode adds the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig(ctx context.Context) (*config.Config, error) {
	return config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
}

// newLogger builds the process logger from config and the --verbose flag.
func newLogger(cfg *config.Config, prefix string) *log.Logger {
	level := log.InfoLevel
	switch cfg.Log.Level {
	case config.LogLevelDebug:
		level = log.DebugLevel
	case config.LogLevelWarn:
		level = log.WarnLevel
	case config.LogLevelError:
		level = log.ErrorLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: prefix, Level: level})
}
