// ABOUTME: CLI commands for exporting and importing lift data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export lift data",
	Long: `Export lift data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables of your sessions (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include sessions since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  lift export json                        # Export all data as JSON
  lift export json -o backup.json         # Save to file
  lift export yaml                        # Export as YAML
  lift export markdown --since 2025-01-01 # Sessions from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(store, logger)
		case "yaml":
			data, err = storage.ExportYAML(store, logger)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, err := parseDay(exportSince)
				if err != nil {
					return err
				}
				since = &t
			}
			md, err := storage.ExportMarkdown(store, logger, since)
			if err != nil {
				return err
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import lift data from JSON",
	Long: `Import lift data from a JSON backup file.

This REPLACES your exercises, templates, history, and settings with the
contents of a file written by 'lift export json'.

EXAMPLES:

  lift import backup.json               # Restore from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := storage.ImportJSON(store, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include sessions since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
