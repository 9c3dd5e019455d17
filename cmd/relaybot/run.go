// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"relaybot/internal/config"
	"relaybot/internal/console"
	"relaybot/internal/discovery"
	"relaybot/internal/host"
	"relaybot/internal/issue"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay bot",
	Long: `Start the relay bot: discover extensions under the configured plugins
directory, activate the ones eligible in the current runtime mode, and
serve until interrupted.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg, "relaybot")
	activeMode := config.DetermineMode(cfg)
	logger.Info("starting", "version", getVersionString(), "mode", activeMode.String())

	disc, err := discovery.New(discovery.Options{
		Root:       cfg.Bot.PluginsDir,
		ActiveMode: activeMode,
		Logger:     logger.WithPrefix("discovery"),
	})
	if err != nil {
		return err
	}
	results, err := disc.Results()
	if err != nil {
		// A bad plugins root gets its own exit code so wrapping scripts
		// can tell a deployment problem from a flag mistake.
		return &ExitError{Code: 2, Err: issue.NewErrorContext().
			WithOperation("scan plugins directory").
			WithResource(cfg.Bot.PluginsDir).
			WithSuggestion("Create the directory or point bot.plugins_dir elsewhere").
			Wrap(err).
			BuildError()}
	}

	h := host.New(logger.WithPrefix("host"))
	activated := h.Activate(results)
	logger.Info("extensions activated", "count", len(activated), "commands", len(h.CommandNames()))

	if cfg.Console.Enabled {
		cons, err := console.New(console.Config{
			Host: cfg.Console.Host,
			Port: cfg.Console.Port,
		}, func() console.Snapshot {
			snap := console.Snapshot{Mode: activeMode.String(), Commands: h.CommandNames()}
			for _, ext := range h.Extensions() {
				snap.Extensions = append(snap.Extensions, ext.Name)
			}
			return snap
		}, logger.WithPrefix("console"))
		if err != nil {
			return err
		}
		if err := cons.Start(ctx); err != nil {
			return issue.WrapWithOperation(err, "start admin console")
		}
		defer func() {
			if err := cons.Stop(); err != nil {
				logger.Warn("console stop failed", "error", err)
			}
		}()
	}

	// Serve until interrupted. Relay traffic arrives through the
	// dispatcher; the extension system itself has no background work.
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
