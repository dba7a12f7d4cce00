/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// archiveCmd snapshots a completed task into the archive and removes it
// from the active list.
var archiveCmd = &cobra.Command{
	Use:   "archive [task_id]",
	Short: "Move a completed task into the archive",
	Long: `Snapshot a completed task into the archive directory and remove it
from the active list. Archived tasks keep their full record and can be
restored later with 'taskdeck archive restore'.

Nothing is removed until you confirm (or pass --force).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var taskToArchive models.Task

		if len(args) > 0 {
			taskToArchive, err = taskStore.Get(args[0])
			if err != nil {
				HandleFatalError(fmt.Sprintf("Error: Could not find task with ID '%s'.", args[0]), err)
			}
		} else {
			taskToArchive, err = selectTaskInteractive(taskStore, store.IsCompleted, "Select completed task to archive")
			if err != nil {
				if err == promptui.ErrInterrupt {
					fmt.Println("Archive cancelled.")
					return
				}
				if err == ErrNoTasksFound {
					fmt.Println("No completed tasks available to archive.")
					return
				}
				HandleFatalError("Error: Could not select a task.", err)
			}
		}

		if taskToArchive.Status != models.StatusCompleted {
			fmt.Printf("Task '%s' (ID: %s) is still pending. Complete it first with: taskdeck done %s\n",
				taskToArchive.Title, taskToArchive.ID, taskToArchive.ID)
			return
		}

		if !archiveForce {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Archive task '%s' (ID: %s) and remove it from the active list", taskToArchive.Title, taskToArchive.ID),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				fmt.Println("Archive cancelled.")
				return
			}
		}

		archiveStore, err := GetArchiveStore()
		if err != nil {
			HandleFatalError("Error: Could not open the archive.", err)
		}
		defer func() { _ = archiveStore.Close() }()

		entry, err := archiveStore.CreateFromTask(taskToArchive)
		if err != nil {
			HandleFatalError("Error: Failed to write the archive entry.", err)
		}

		if err := taskStore.Delete(taskToArchive.ID); err != nil {
			HandleFatalError(fmt.Sprintf("Error: Archived the task but could not remove it from the active list. Entry %s is safe.", entry.ID), err)
		}

		fmt.Printf("📦 Archived task '%s' (entry %s)\n", taskToArchive.Title, entry.ID[:8])
		fmt.Printf("   Restore it with: taskdeck archive restore %s\n", entry.ID[:8])
	},
}

// archiveListCmd lists archive entries, newest first.
var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		archiveStore, err := GetArchiveStore()
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() { _ = archiveStore.Close() }()

		entries, err := archiveStore.List()
		if err != nil {
			return fmt.Errorf("failed to list archive entries: %w", err)
		}

		if isJSON() {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			cmd.Println("No archived tasks.")
			return nil
		}

		table := &ui.Table{
			Headers: []string{"Entry", "Task", "Title", "Due Date", "Archived At"},
			Rows:    make([][]string, 0, len(entries)),
		}
		for _, e := range entries {
			table.Rows = append(table.Rows, []string{
				e.ID[:8],
				e.TaskID,
				e.Title,
				e.DueDate,
				e.ArchivedAt.Format("2006-01-02 15:04"),
			})
		}
		fmt.Println(table.Render())
		return nil
	},
}

// archiveRestoreCmd copies an archive entry back into the active list.
var archiveRestoreCmd = &cobra.Command{
	Use:   "restore <entry_id>",
	Short: "Restore an archived task to the active list",
	Long: `Copy an archived task back into the active list. The restored task
gets a fresh ID and starts out pending; the archive entry is kept. An
entry ID prefix is enough as long as it is unambiguous.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("failed to get task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		archiveStore, err := GetArchiveStore()
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() { _ = archiveStore.Close() }()

		restored, err := archiveStore.Restore(args[0], taskStore)
		if err != nil {
			return fmt.Errorf("failed to restore entry %s: %w", args[0], err)
		}

		fmt.Printf("✓ Restored task '%s' as ID %s (status %s)\n", restored.Title, restored.ID, restored.Status)
		return nil
	},
}

var archiveForce bool

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)

	archiveCmd.Flags().BoolVarP(&archiveForce, "force", "f", false, "skip the confirmation prompt")
}
