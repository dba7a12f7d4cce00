/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add [title]",
	Aliases: []string{"a", "new"},
	Short:   "Add a new task",
	Long: `Add a task to the list. The title can be given as arguments; the due
date is required and must use the YYYY-MM-DD format. Missing fields are
prompted for when running in a terminal.

Examples:
  taskdeck add "Buy milk" --due 2025-09-01
  taskdeck add "Pay bills" --due 2025-09-05 --priority High --desc "electricity and water"
  taskdeck add                       # fully interactive`,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		task, err := addTaskFromInput(taskStore, strings.TrimSpace(strings.Join(args, " ")), addDesc, addDue, addPriority)
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Add cancelled.")
				return
			}
			HandleFatalError(fmt.Sprintf("Error: Could not add the task: %v", err), err)
		}

		fmt.Printf("✓ Task added: %s (ID: %s, due %s, %s priority)\n", task.Title, task.ID, task.DueDate, task.Priority)
		fmt.Printf("\n💡 What's next?\n")
		fmt.Printf("   • View all tasks: taskdeck list\n")
		fmt.Printf("   • Complete it:    taskdeck done %s\n", task.ID)
	},
}

var (
	addDesc     string
	addDue      string
	addPriority string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDesc, "desc", "", "task description")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority (Low, Medium, High; default Medium)")
}

// addTaskFromInput fills any missing fields interactively, then stores the
// task. Prompts reject empty titles and malformed dates until the input is
// valid, so the store only ever sees arguments that pass validation.
func addTaskFromInput(taskStore *store.TaskStore, title, desc, due, priority string) (models.Task, error) {
	var err error

	if title == "" {
		if !isInteractive() {
			return models.Task{}, fmt.Errorf("a task title is required")
		}
		prompt := promptui.Prompt{
			Label: "Title",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return fmt.Errorf("title cannot be empty")
				}
				return nil
			},
		}
		title, err = prompt.Run()
		if err != nil {
			return models.Task{}, err
		}
		title = strings.TrimSpace(title)
		logger.SetLastInput(title)
	}

	if desc == "" && isInteractive() {
		prompt := promptui.Prompt{Label: "Description (optional)"}
		desc, err = prompt.Run()
		if err != nil {
			return models.Task{}, err
		}
	}

	if due == "" {
		if !isInteractive() {
			return models.Task{}, fmt.Errorf("a due date is required (--due YYYY-MM-DD)")
		}
		prompt := promptui.Prompt{
			Label: "Due date (YYYY-MM-DD)",
			Validate: func(input string) error {
				if !models.ValidDate(input) {
					return fmt.Errorf("due date must be a valid YYYY-MM-DD date")
				}
				return nil
			},
		}
		due, err = prompt.Run()
		if err != nil {
			return models.Task{}, err
		}
	}

	if priority == "" && isInteractive() {
		prompt := promptui.Select{
			Label:     "Priority",
			Items:     []string{string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh)},
			CursorPos: 1, // Medium
		}
		_, priority, err = prompt.Run()
		if err != nil {
			return models.Task{}, err
		}
	}

	return taskStore.Add(title, desc, due, models.TaskPriority(models.Canonicalize(priority)))
}
