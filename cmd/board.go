package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
)

// boardCmd opens the interactive task board.
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open a full-screen task board. Move with j/k or the arrow keys,
filter with 1/2/3, search with /, complete with Space or Enter, delete
with d, and quit with q.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		return ui.RunBoard(taskStore)
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
