/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID. If no ID is provided, an interactive list is shown. A confirmation prompt is displayed before deletion unless --force is given.`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var taskIDToDelete string
		var taskTitle string // For confirmation message

		if len(args) > 0 {
			taskIDToDelete = args[0]
			task, err := taskStore.Get(taskIDToDelete)
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task with ID '%s'.", taskIDToDelete), err)
			}
			taskTitle = task.Title
		} else {
			selectedTask, err := selectTaskInteractive(taskStore, nil, "Select task to delete")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No tasks available to delete.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
			taskIDToDelete = selectedTask.ID
			taskTitle = selectedTask.Title
		}

		if !deleteForce {
			confirmPrompt := promptui.Prompt{
				Label:     fmt.Sprintf("Are you sure you want to delete task '%s' (ID: %s)", taskTitle, taskIDToDelete),
				IsConfirm: true,
			}
			if _, err := confirmPrompt.Run(); err != nil {
				// Handles both 'no' (promptui.ErrAbort) and actual errors
				if err == promptui.ErrAbort || err == promptui.ErrInterrupt {
					fmt.Println("Deletion cancelled.")
					return
				}
				HandleFatalError("Error: Confirmation prompt failed.", err)
			}
		}

		if err := taskStore.Delete(taskIDToDelete); err != nil {
			HandleFatalError(fmt.Sprintf("Error: Failed to delete task '%s'.", taskTitle), err)
		}

		fmt.Printf("✓ Task '%s' (ID: %s) deleted.\n", taskTitle, taskIDToDelete)
	},
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
