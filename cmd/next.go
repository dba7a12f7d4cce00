package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// nextCmd suggests the next task to work on: the pending task with the
// earliest due date, breaking ties by priority.
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest the next task to work on",
	Long: `Finds the pending task with the earliest due date. When several tasks
share a due date, the higher priority wins; remaining ties keep their
insertion order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		best, ok := nextTask(taskStore.Tasks())
		if !ok {
			fmt.Println("No pending tasks. Nothing to do! 🎉")
			return nil
		}

		if isJSON() {
			return printJSON(best)
		}

		priority := best.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}

		var b strings.Builder
		fmt.Fprintf(&b, "ID:        %s\n", best.ID)
		fmt.Fprintf(&b, "Title:     %s\n", best.Title)
		fmt.Fprintf(&b, "Due date:  %s\n", best.DueDate)
		fmt.Fprintf(&b, "Priority:  %s", priority)
		if best.Description != "" {
			fmt.Fprintf(&b, "\nDesc:      %s", best.Description)
		}
		fmt.Println(ui.RenderPanel("Next Suggested Task", b.String()))

		fmt.Println()
		fmt.Println("Suggested actions:")
		fmt.Printf("  • Complete: taskdeck done %s\n", best.ID)
		fmt.Printf("  • Update:   taskdeck update %s\n", best.ID)
		fmt.Printf("  • List all: taskdeck list --sort-due\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

// nextTask picks the pending task with the earliest due date. Ties go to
// the higher priority; a task without a priority counts as Medium. The
// sort is stable, so remaining ties keep insertion order.
func nextTask(tasks []models.Task) (models.Task, bool) {
	pending := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if store.IsPending(t) {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return models.Task{}, false
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.DueDate != b.DueDate {
			return a.DueDate < b.DueDate
		}
		return priorityRank(a.Priority) < priorityRank(b.Priority)
	})

	return pending[0], true
}

func priorityRank(p models.TaskPriority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityLow:
		return 2
	default:
		// Medium, including tasks with no priority set
		return 1
	}
}
