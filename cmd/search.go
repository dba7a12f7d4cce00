package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search tasks by keyword",
	Long: `Search for tasks whose title or description contains the keyword.
Matching is case-insensitive.

Examples:
  taskdeck search milk
  taskdeck search "pay bills" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		keyword := strings.Join(args, " ")
		results := taskStore.Search(keyword)

		if isJSON() {
			return printJSON(results)
		}

		if len(results) == 0 {
			cmd.Printf("No tasks matched %q.\n", keyword)
			return nil
		}

		fmt.Println(ui.RenderTasks(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
