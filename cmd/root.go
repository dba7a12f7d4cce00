/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck helps you keep track of your personal tasks.",
	Long: `TaskDeck is a file-backed task tracker for the command line.
Add, list, update, complete, delete, search, and export tasks through
subcommands, or run the classic numbered menu with 'taskdeck menu'.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(cmd.CommandPath())
	},
	Run: func(cmd *cobra.Command, args []string) {
		// return help if no args are provided
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskdeck/.taskdeck.yaml or $HOME/.taskdeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// GetTaskFilePath returns the full path to the tasks file.
func GetTaskFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.TasksDir, config.Data.File)
}

// GetStore builds the configured persistence backend and loads the task list.
func GetStore() (*store.TaskStore, error) {
	config := GetConfig()
	taskFilePath := GetTaskFilePath()

	var (
		backend store.Backend
		err     error
	)
	switch config.Data.Format {
	case store.FormatSQLite:
		backend, err = store.NewSQLiteBackend(taskFilePath)
	default:
		backend, err = store.NewFileBackend(afero.NewOsFs(), taskFilePath, config.Data.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend at %s: %w", taskFilePath, err)
	}

	taskStore, err := store.Open(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store at %s: %w", taskFilePath, err)
	}
	return taskStore, nil
}

// GetArchiveStore opens the archive rooted at the configured archive directory.
func GetArchiveStore() (*store.FileArchiveStore, error) {
	config := GetConfig()
	archiveStore, err := store.NewFileArchiveStore(afero.NewOsFs(), config.Archive.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive at %s: %w", config.Archive.Dir, err)
	}
	return archiveStore, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be narrowed with the provided predicate.
func selectTaskInteractive(taskStore *store.TaskStore, keep store.Predicate, label string) (models.Task, error) {
	tasks := taskStore.Filter(keep)
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Due: {{ .DueDate }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Due: {{ .DueDate }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Due date:\t" | faint }} {{ .DueDate }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		name := strings.ToLower(task.Title)
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return tasks[i], nil
}
