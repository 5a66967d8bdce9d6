// ABOUTME: CLI commands for exporting and importing coaching data.
// ABOUTME: Supports JSON and YAML; import merges without clobbering history.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export coaching data",
	Long: `Export all coaching data: set logs, the adjustment log, programs,
and biometric snapshots.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)

EXAMPLES:

  coach export json                 # Export all data as JSON
  coach export json -o backup.json  # Save to file
  coach export yaml                 # Export as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		all, err := svc.Repo().GetAllData()
		if err != nil {
			return fmt.Errorf("failed to collect data: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = all.ToJSON()
		case "yaml":
			data, err = all.ToYAML()
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}

		fmt.Print(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import coaching data from a JSON or YAML export",
	Long: `Import data from a previous export. Set logs are upserted by id;
adjustment events and snapshots already present are left untouched, so
importing the same file twice is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var data storage.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			if yerr := yaml.Unmarshal(raw, &data); yerr != nil {
				return fmt.Errorf("failed to parse export: %w", err)
			}
		}

		if err := svc.Repo().ImportData(&data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("✓ Imported %d set log(s), %d adjustment(s), %d plan(s), %d snapshot(s)",
			len(data.SetLogs), len(data.Adjustments), len(data.Plans), len(data.Snapshots))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
