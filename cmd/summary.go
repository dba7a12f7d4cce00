package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"stats"},
	Short:   "Show task counts",
	Long:    `Show how many tasks exist in total and how many are pending or completed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		sum := taskStore.Summary()

		if isJSON() {
			return printJSON(sum)
		}

		fmt.Println(ui.StyleHeader.Render("Task Summary"))
		fmt.Printf("  Total:     %d\n", sum.Total)
		fmt.Printf("  Pending:   %s\n", ui.StyleWarning.Render(fmt.Sprintf("%d", sum.Pending)))
		fmt.Printf("  Completed: %s\n", ui.StyleSuccess.Render(fmt.Sprintf("%d", sum.Completed)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
