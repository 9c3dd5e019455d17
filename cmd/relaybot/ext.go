// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"relaybot/internal/config"
	"relaybot/internal/discovery"
)

var extEligibleOnly bool

var extCmd = &cobra.Command{
	Use:   "ext",
	Short: "Inspect extensions",
}

var extListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered extensions and their activation decisions",
	Long: `Run extension discovery without activating anything and print each
discovered extension with its declared modes and whether the current
runtime mode would activate it.`,
	RunE: runExtList,
}

func init() {
	extCmd.AddCommand(extListCmd)
	extListCmd.Flags().BoolVar(&extEligibleOnly, "eligible-only", false, "show only extensions eligible in the current mode")
}

func runExtList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg, "discovery")
	activeMode := config.DetermineMode(cfg)

	disc, err := discovery.New(discovery.Options{
		Root:       cfg.Bot.PluginsDir,
		ActiveMode: activeMode,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	seq, err := disc.Results()
	if err != nil {
		return err
	}

	var results []discovery.Result
	for res := range seq {
		if extEligibleOnly && !res.Eligible {
			continue
		}
		results = append(results, res)
	}

	cmd.Println(SubtitleStyle.Render(fmt.Sprintf("active mode: %s", activeMode)))
	cmd.Print(renderExtTable(results))
	return nil
}

// renderExtTable formats discovery results as an aligned three-column
// table: name, status, declared modes.
func renderExtTable(results []discovery.Result) string {
	if len(results) == 0 {
		return "no extensions discovered\n"
	}

	nameWidth := len("NAME")
	for _, res := range results {
		if len(res.Name) > nameWidth {
			nameWidth = len(res.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		HeaderStyle.Render(pad("NAME", nameWidth)),
		HeaderStyle.Render(pad("STATUS", 10)),
		HeaderStyle.Render("MODES"))

	for _, res := range results {
		status := WarningStyle.Render(pad("ineligible", 10))
		if res.Eligible {
			status = SuccessStyle.Render(pad("eligible", 10))
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			pad(res.Name, nameWidth), status, strings.Join(res.ModeNames, "|"))
	}
	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
