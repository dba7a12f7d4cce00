/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [task_id]",
	Short: "Update an existing task",
	Long: `Update a task's description, due date, status, or priority. The title
is fixed at creation. If task_id is omitted, an interactive list is
shown. Without flags, each field is prompted for; press Enter to keep
the current value.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var taskToUpdate models.Task

		if len(args) > 0 {
			taskToUpdate, err = taskStore.Get(args[0])
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task with ID '%s'.", args[0]), err)
			}
		} else {
			taskToUpdate, err = selectTaskInteractive(taskStore, nil, "Select task to update")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Update cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to update.")
					return
				}
				HandleFatalError("Error: Could not select a task for updating.", err)
			}
		}

		req, flagged := updateRequestFromFlags(cmd)
		var updated models.Task
		if flagged {
			updated, err = taskStore.Update(taskToUpdate.ID, req)
		} else {
			updated, err = promptUpdateTask(taskStore, taskToUpdate)
		}
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Update cancelled.")
				return
			}
			HandleFatalError(fmt.Sprintf("Error: Failed to update task '%s': %v", taskToUpdate.Title, err), err)
		}

		fmt.Printf("✓ Task '%s' (ID: %s) updated.\n", updated.Title, updated.ID)
		fmt.Printf("  Due: %s  Status: %s  Priority: %s\n", updated.DueDate, updated.Status, updated.Priority)
	},
}

var (
	updateDesc     string
	updateDue      string
	updateStatus   string
	updatePriority string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateDesc, "desc", "", "new description")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status (Pending, Completed)")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (Low, Medium, High)")
}

// updateRequestFromFlags collects only the flags that were actually set,
// so untouched fields stay untouched.
func updateRequestFromFlags(cmd *cobra.Command) (store.UpdateRequest, bool) {
	var req store.UpdateRequest
	flagged := false

	if cmd.Flags().Changed("desc") {
		req.Description = &updateDesc
		flagged = true
	}
	if cmd.Flags().Changed("due") {
		req.DueDate = &updateDue
		flagged = true
	}
	if cmd.Flags().Changed("status") {
		req.Status = &updateStatus
		flagged = true
	}
	if cmd.Flags().Changed("priority") {
		req.Priority = &updatePriority
		flagged = true
	}

	return req, flagged
}

// promptUpdateTask walks through each mutable field, keeping the current
// value on an empty answer, and applies the result.
func promptUpdateTask(taskStore *store.TaskStore, task models.Task) (models.Task, error) {
	fmt.Printf("Updating task: %s (ID: %s)\n", task.Title, task.ID)

	var req store.UpdateRequest

	descPrompt := promptui.Prompt{
		Label:   "New description (press Enter to keep current)",
		Default: task.Description,
	}
	newDesc, err := descPrompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	logger.SetLastInput(newDesc)
	if newDesc != task.Description {
		req.Description = &newDesc
	}

	duePrompt := promptui.Prompt{
		Label:   "New due date (YYYY-MM-DD, press Enter to keep current)",
		Default: task.DueDate,
		Validate: func(input string) error {
			if !models.ValidDate(input) {
				return fmt.Errorf("due date must be a valid YYYY-MM-DD date")
			}
			return nil
		},
	}
	newDue, err := duePrompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	if newDue != task.DueDate {
		req.DueDate = &newDue
	}

	statuses := []string{string(models.StatusPending), string(models.StatusCompleted)}
	statusPrompt := promptui.Select{
		Label:     "Status",
		Items:     statuses,
		CursorPos: indexOfChoice(statuses, string(task.Status)),
	}
	_, newStatus, err := statusPrompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	if newStatus != string(task.Status) {
		req.Status = &newStatus
	}

	priorities := []string{string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh)}
	priorityPrompt := promptui.Select{
		Label:     "Priority",
		Items:     priorities,
		CursorPos: indexOfChoice(priorities, string(task.Priority)),
	}
	_, newPriority, err := priorityPrompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	if newPriority != string(task.Priority) {
		req.Priority = &newPriority
	}

	return taskStore.Update(task.ID, req)
}

func indexOfChoice(items []string, value string) int {
	for i, item := range items {
		if item == value {
			return i
		}
	}
	return 0
}
