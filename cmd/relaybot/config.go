// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"relaybot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and export configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Print the merged configuration (defaults, config file, environment) as TOML.",
	RunE:  runConfigShow,
}

var configExportDefaultCmd = &cobra.Command{
	Use:   "export-default",
	Short: "Print the default configuration as TOML",
	Long: `Print the built-in default configuration as a TOML document suitable
for seeding a config file. Output is deterministic so it can back a
pre-commit check.`,
	RunE: runConfigExportDefault,
}

var configGenEnvCmd = &cobra.Command{
	Use:   "gen-env",
	Short: "Print a .env template of all RELAYBOT_* overrides",
	RunE:  runConfigGenEnv,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configExportDefaultCmd)
	configCmd.AddCommand(configGenEnvCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	cmd.Print(string(out))
	return nil
}

func runConfigExportDefault(cmd *cobra.Command, _ []string) error {
	out, err := config.ExportDefault()
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}

func runConfigGenEnv(cmd *cobra.Command, _ []string) error {
	cmd.Print(string(config.EnvTemplate()))
	return nil
}
