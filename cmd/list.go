/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in insertion order, optionally narrowed by status or
priority and sorted by due date.

Examples:
  taskdeck list                      # All tasks
  taskdeck list --status pending     # Only pending tasks
  taskdeck list --priority high      # Only high priority tasks
  taskdeck list --sort-due           # Earliest due date first
  taskdeck list --json               # Machine-readable output`,
	RunE: runList,
}

var (
	listStatus   string
	listPriority string
	listSortDue  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (Pending, Completed)")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority (Low, Medium, High)")
	listCmd.Flags().BoolVar(&listSortDue, "sort-due", false, "sort by due date, earliest first")
}

func runList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to get task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	keep, err := buildListFilter(listStatus, listPriority)
	if err != nil {
		return err
	}

	tasks := taskStore.Filter(keep)
	if listSortDue {
		tasks = store.SortByDueDate(tasks)
	}

	if isJSON() {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		cmd.Println("Add one with: taskdeck add \"Your first task\" --due 2025-12-31")
		return nil
	}

	fmt.Println(ui.RenderTasks(tasks))
	return nil
}

// buildListFilter composes the status and priority flags into a single
// predicate. Both empty means no filter at all.
func buildListFilter(status, priority string) (store.Predicate, error) {
	var preds []store.Predicate

	if status != "" {
		parsed, err := models.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		if parsed == models.StatusCompleted {
			preds = append(preds, store.IsCompleted)
		} else {
			preds = append(preds, store.IsPending)
		}
	}

	if priority != "" {
		parsed, err := models.ParsePriority(priority)
		if err != nil {
			return nil, err
		}
		preds = append(preds, store.HasPriority(parsed))
	}

	if len(preds) == 0 {
		return nil, nil
	}
	return func(t models.Task) bool {
		for _, keep := range preds {
			if !keep(t) {
				return false
			}
		}
		return true
	}, nil
}
