// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed extension_guide.md
var extensionGuide string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the extension authoring guide",
	RunE:  runDocs,
}

func runDocs(cmd *cobra.Command, _ []string) error {
	out, err := glamour.Render(extensionGuide, "auto")
	if err != nil {
		return fmt.Errorf("render docs: %w", err)
	}
	cmd.Print(out)
	return nil
}
