package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/ui"
	"github.com/taskdeck/taskdeck/store"
)

// watchCmd re-renders the task table whenever the data file changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live-render the task table as the data file changes",
	Long: `Watch the task data file and re-render the table whenever another
process writes it. Useful in a second terminal next to an editor or a
long taskdeck session. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := GetTaskFilePath()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create fsnotify watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		// Saves replace the file via rename, which would orphan a watch
		// on the file itself, so watch the directory instead.
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory %s: %w", dir, err)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("👀 Watching %s (Ctrl+C to stop)\n", path)
		renderWatchSnapshot(path)

		// Writes come in bursts (data file, then checksum), so settle
		// briefly before re-rendering.
		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopped watching.")
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !eventTouchesFile(event, path) {
					continue
				}
				debounce = time.After(200 * time.Millisecond)

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "error", err)

			case <-debounce:
				debounce = nil
				renderWatchSnapshot(path)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// eventTouchesFile reports whether the event concerns the data file and
// is an operation that changes its contents.
func eventTouchesFile(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

func renderWatchSnapshot(path string) {
	tasks, err := loadTasksSnapshot()
	if err != nil {
		PrintError(fmt.Sprintf("Could not reload %s.", path), err)
		return
	}
	for i := range tasks {
		tasks[i].Normalize()
	}

	sum := store.Summarize(tasks)
	fmt.Printf("\n%s - %d tasks (%d pending, %d completed)\n",
		time.Now().Format("15:04:05"), sum.Total, sum.Pending, sum.Completed)
	fmt.Println(ui.RenderTasks(tasks))
}
