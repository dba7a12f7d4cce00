/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export tasks to a file",
	Long: `Export the full task list to a file. The format is taken from
--format, the export.format config key, or the file extension, in that
order. Without a path the configured default (tasks_export.csv) is used.

Formats: csv, json, markdown, pdf

Examples:
  taskdeck export                       # tasks_export.csv
  taskdeck export report.pdf
  taskdeck export tasks.md --format markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		config := GetConfig()

		path := config.Export.Path
		if path == "" {
			path = export.DefaultPath
		}
		if len(args) > 0 {
			path = args[0]
		}

		format := exportFormat
		if format == "" {
			format = config.Export.Format
		}
		if format == "" {
			format = export.FormatFromPath(path)
		}

		tasks := taskStore.Tasks()
		if err := export.WriteFile(afero.NewOsFs(), tasks, path, format); err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}

		fmt.Printf("✓ Exported %d tasks to %s (%s)\n", len(tasks), path, format)
		return nil
	},
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format (csv, json, markdown, pdf)")
}
