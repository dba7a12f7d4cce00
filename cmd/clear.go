/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/export"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

var (
	clearForce    bool
	clearAll      bool
	clearNoBackup bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove completed tasks in bulk",
	Long: `Remove tasks from the list in one operation.

By default only completed tasks are cleared. Use --all to clear every
task. A preview and a confirmation prompt protect against accidents,
and a JSON backup of the removed tasks is written unless --no-backup
is given.

Examples:
  taskdeck clear                 # Clear completed tasks (safe default)
  taskdeck clear --all           # Clear all tasks (with confirmation)
  taskdeck clear --all --force   # Clear all tasks without confirmation`,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var keep store.Predicate
		if !clearAll {
			keep = store.IsCompleted
		}
		tasksToDelete := taskStore.Filter(keep)

		if len(tasksToDelete) == 0 {
			if clearAll {
				fmt.Println("No tasks to clear.")
			} else {
				fmt.Println("No completed tasks to clear. Use --all to clear everything.")
			}
			return
		}

		showClearPreview(tasksToDelete)

		if !clearForce {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Clear %d tasks permanently? This cannot be undone", len(tasksToDelete)),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				fmt.Println("Clear operation cancelled.")
				return
			}
		}

		if !clearNoBackup {
			if err := createClearBackup(tasksToDelete); err != nil {
				fmt.Printf("Warning: Failed to create backup: %v\n", err)
				if !clearForce {
					fmt.Println("Clear operation cancelled for safety.")
					return
				}
			}
		}

		ids := make([]string, len(tasksToDelete))
		for i, t := range tasksToDelete {
			ids[i] = t.ID
		}
		cleared, err := taskStore.DeleteMany(ids)
		if err != nil {
			HandleFatalError("Error: Failed to clear tasks.", err)
		}

		fmt.Printf("\n✅ Cleared %d tasks\n", cleared)
	},
}

func showClearPreview(tasks []models.Task) {
	fmt.Printf("\n📋 Tasks to be cleared (%d total):\n\n", len(tasks))
	for _, task := range tasks {
		mark := "○"
		if task.Status == models.StatusCompleted {
			mark = "✓"
		}
		fmt.Printf("  %s %s (ID: %s, due %s)\n", mark, task.Title, task.ID, task.DueDate)
	}
	fmt.Println()
}

// createClearBackup writes the tasks about to be removed as a JSON
// snapshot under <rootDir>/backups.
func createClearBackup(tasks []models.Task) error {
	cfg := GetConfig()
	backupDir := filepath.Join(cfg.Project.RootDir, "backups")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	backupFile := filepath.Join(backupDir, fmt.Sprintf("clear_backup_%s.json", timestamp))

	if err := export.WriteFile(afero.NewOsFs(), tasks, backupFile, export.FormatJSON); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	fmt.Printf("📦 Backup created: %s\n", backupFile)
	return nil
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "clear all tasks, not just completed ones")
	clearCmd.Flags().BoolVar(&clearNoBackup, "no-backup", false, "skip the backup file")
}
