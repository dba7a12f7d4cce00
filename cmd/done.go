package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as completed",
	Long:    `Mark a task as completed. If task_id is provided, it marks that task directly. Otherwise, it presents an interactive list of pending tasks to choose from. Completing an already completed task is not an error.`,
	Example: `  # Interactive mode
  taskdeck done

  # Complete a specific task
  taskdeck done 3

  # Using alias
  taskdeck d 3`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var taskToComplete models.Task

		if len(args) > 0 {
			taskToComplete, err = taskStore.Get(args[0])
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task with ID '%s'.", args[0]), err)
			}
		} else {
			taskToComplete, err = selectTaskInteractive(taskStore, store.IsPending, "Select task to mark as completed")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Operation cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No pending tasks available to complete.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
		}

		wasCompleted := taskToComplete.Status == models.StatusCompleted

		updatedTask, err := taskStore.MarkCompleted(taskToComplete.ID)
		if err != nil {
			HandleFatalError(fmt.Sprintf("Error: Failed to mark task '%s' as completed.", taskToComplete.Title), err)
		}

		if wasCompleted {
			fmt.Printf("Task '%s' (ID: %s) was already completed.\n", updatedTask.Title, updatedTask.ID)
			return
		}

		fmt.Printf("🎉 Task '%s' (ID: %s) marked as completed!\n", updatedTask.Title, updatedTask.ID)
		fmt.Printf("\n💡 What's next?\n")
		fmt.Printf("   • Find next task: taskdeck next\n")
		fmt.Printf("   • Archive it:     taskdeck archive %s\n", updatedTask.ID)
		fmt.Printf("   • View all tasks: taskdeck list\n")
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
