/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/export"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// menuCmd runs the classic numbered menu loop.
var menuCmd = &cobra.Command{
	Use:     "menu",
	Aliases: []string{"interactive", "i"},
	Short:   "Run the interactive numbered menu",
	Long: `Run TaskDeck as a classic numbered menu: pick an operation by number,
answer the prompts, and the menu comes back until you choose Exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		runMenu(taskStore)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// menuChoice binds a menu number to its action. A nil Run means Exit.
type menuChoice struct {
	Number int
	Label  string
	Run    func(taskStore *store.TaskStore) error
}

// menuChoices lists the menu surface in display order.
var menuChoices = []menuChoice{
	{1, "Add a task", menuAdd},
	{2, "View all tasks", menuView},
	{3, "Update a task", menuUpdate},
	{4, "Mark a task completed", menuComplete},
	{5, "Delete a task", menuDelete},
	{6, "Search tasks", menuSearch},
	{7, "Filter tasks", menuFilter},
	{8, "Show summary", menuSummary},
	{9, "Sort by due date", menuSort},
	{10, "Export tasks", menuExport},
	{11, "Exit", nil},
}

func runMenu(taskStore *store.TaskStore) {
	for {
		printMenu()

		choice, err := promptMenuChoice()
		if err != nil {
			// Ctrl+C or Ctrl+D leaves the menu, like choosing Exit.
			fmt.Println("Goodbye!")
			return
		}

		item := menuChoices[choice-1]
		if item.Run == nil {
			fmt.Println("Goodbye!")
			return
		}

		if err := item.Run(taskStore); err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Cancelled.")
				continue
			}
			fmt.Printf("⚠️  %v\n", err)
		}
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println(ui.StyleHeader.Render("TaskDeck Menu"))
	for _, item := range menuChoices {
		fmt.Printf("  %2d. %s\n", item.Number, item.Label)
	}
}

func promptMenuChoice() (int, error) {
	prompt := promptui.Prompt{
		Label:    fmt.Sprintf("Choose an option (1-%d)", len(menuChoices)),
		Validate: validateMenuChoice,
	}
	raw, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	logger.SetLastInput(raw)

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// validateMenuChoice rejects non-numeric and out-of-range selections so
// the prompt asks again until the choice is valid.
func validateMenuChoice(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(menuChoices) {
		return fmt.Errorf("please enter a number between 1 and %d", len(menuChoices))
	}
	return nil
}

func menuAdd(taskStore *store.TaskStore) error {
	task, err := addTaskFromInput(taskStore, "", "", "", "")
	if err != nil {
		return err
	}
	fmt.Printf("✓ Task added: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}

func menuView(taskStore *store.TaskStore) error {
	fmt.Println(ui.RenderTasks(taskStore.Tasks()))
	return nil
}

func menuUpdate(taskStore *store.TaskStore) error {
	task, err := selectTaskInteractive(taskStore, nil, "Select task to update")
	if err != nil {
		if err == ErrNoTasksFound {
			fmt.Println("No tasks available to update.")
			return nil
		}
		return err
	}

	updated, err := promptUpdateTask(taskStore, task)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Task '%s' (ID: %s) updated.\n", updated.Title, updated.ID)
	return nil
}

func menuComplete(taskStore *store.TaskStore) error {
	task, err := selectTaskInteractive(taskStore, store.IsPending, "Select task to mark as completed")
	if err != nil {
		if err == ErrNoTasksFound {
			fmt.Println("No pending tasks to complete.")
			return nil
		}
		return err
	}

	updated, err := taskStore.MarkCompleted(task.ID)
	if err != nil {
		return err
	}
	fmt.Printf("🎉 Task '%s' (ID: %s) marked as completed!\n", updated.Title, updated.ID)
	return nil
}

func menuDelete(taskStore *store.TaskStore) error {
	task, err := selectTaskInteractive(taskStore, nil, "Select task to delete")
	if err != nil {
		if err == ErrNoTasksFound {
			fmt.Println("No tasks available to delete.")
			return nil
		}
		return err
	}

	confirm := promptui.Prompt{
		Label:     fmt.Sprintf("Delete task '%s' (ID: %s)", task.Title, task.ID),
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		fmt.Println("Deletion cancelled.")
		return nil
	}

	if err := taskStore.Delete(task.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Task '%s' (ID: %s) deleted.\n", task.Title, task.ID)
	return nil
}

func menuSearch(taskStore *store.TaskStore) error {
	prompt := promptui.Prompt{Label: "Keyword"}
	keyword, err := prompt.Run()
	if err != nil {
		return err
	}
	logger.SetLastInput(keyword)

	results := taskStore.Search(keyword)
	if len(results) == 0 {
		fmt.Printf("No tasks matched %q.\n", keyword)
		return nil
	}
	fmt.Println(ui.RenderTasks(results))
	return nil
}

func menuFilter(taskStore *store.TaskStore) error {
	options := []string{"Pending", "Completed", "Low priority", "Medium priority", "High priority"}
	prompt := promptui.Select{Label: "Filter by", Items: options}
	i, _, err := prompt.Run()
	if err != nil {
		return err
	}

	var keep store.Predicate
	switch i {
	case 0:
		keep = store.IsPending
	case 1:
		keep = store.IsCompleted
	case 2:
		keep = store.HasPriority(models.PriorityLow)
	case 3:
		keep = store.HasPriority(models.PriorityMedium)
	case 4:
		keep = store.HasPriority(models.PriorityHigh)
	}

	results := taskStore.Filter(keep)
	if len(results) == 0 {
		fmt.Println("No tasks match that filter.")
		return nil
	}
	fmt.Println(ui.RenderTasks(results))
	return nil
}

func menuSummary(taskStore *store.TaskStore) error {
	sum := taskStore.Summary()
	fmt.Printf("Total: %d  Pending: %d  Completed: %d\n", sum.Total, sum.Pending, sum.Completed)
	return nil
}

func menuSort(taskStore *store.TaskStore) error {
	fmt.Println(ui.RenderTasks(store.SortByDueDate(taskStore.Tasks())))
	return nil
}

func menuExport(taskStore *store.TaskStore) error {
	config := GetConfig()
	defaultPath := config.Export.Path
	if defaultPath == "" {
		defaultPath = export.DefaultPath
	}

	prompt := promptui.Prompt{
		Label:   "Export file",
		Default: defaultPath,
	}
	path, err := prompt.Run()
	if err != nil {
		return err
	}

	format := export.FormatFromPath(path)
	tasks := taskStore.Tasks()
	if err := export.WriteFile(afero.NewOsFs(), tasks, path, format); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d tasks to %s (%s)\n", len(tasks), path, format)
	return nil
}
