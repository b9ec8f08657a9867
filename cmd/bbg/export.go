// ABOUTME: CLI command for exporting the visible dashboard data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <format>",
		Short: "Export dashboard data",
		Long: `Export the data visible to the logged-in identity.

FORMATS:

  json       Full JSON export (usable as --seed-file)
  yaml       YAML export (usable as --seed-file)
  markdown   Markdown tables

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  bbg --as admin export yaml -o seed.yaml   # Full dataset as a seed file
  bbg --as member:m1 export markdown        # One member's records`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"json", "yaml", "markdown"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]

			_, view, err := c.app.View()
			if err != nil {
				return err
			}
			now := c.app.Now()
			export := storage.NewExport(view, now)

			var data []byte
			switch format {
			case "json":
				data, err = storage.ExportJSON(export)
			case "yaml":
				data, err = storage.ExportYAML(export)
			case "markdown", "md":
				data = []byte(storage.ExportMarkdown(export, now))
			default:
				return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported %s to %s", format, output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
