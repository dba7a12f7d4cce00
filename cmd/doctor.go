/*
Copyright © 2025 TaskDeck Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check TaskDeck setup and diagnose data issues",
	Long: `Validate your TaskDeck configuration and data file.

Checks:
  • Configuration values
  • Task data file presence and integrity checksum
  • Data file structure (JSON Schema)
  • Task records: unique IDs, valid dates, known status and priority values
  • Archive directory
  • Crash logs

Use this to troubleshoot after editing the data file by hand or moving
it between machines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string
	Status  string // "ok", "warn", "fail"
	Message string
	Hint    string
}

// tasksSchema describes the persisted JSON task list. Files written by
// older versions may omit status, priority, and the timestamps.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "due_date"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "description": {"type": "string"},
      "due_date": {"type": "string"},
      "status": {"type": "string"},
      "priority": {"type": "string"},
      "created_at": {"type": ["string", "null"]},
      "updated_at": {"type": ["string", "null"]}
    }
  }
}`

func runDoctor() error {
	fmt.Println("🩺 TaskDeck Doctor")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	checks := []DoctorCheck{}
	hasErrors := false

	checks = append(checks, checkConfig())
	checks = append(checks, checkDataFile())
	checks = append(checks, checkChecksum())
	checks = append(checks, checkSchema())
	checks = append(checks, checkTaskRecords())
	checks = append(checks, checkArchive())
	checks = append(checks, checkCrashLogs())

	for _, c := range checks {
		printCheck(c)
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if hasErrors {
		fmt.Println("❌ Issues found. Fix the errors above before continuing.")
	} else {
		fmt.Println("✅ Everything looks good!")
	}

	return nil
}

func printCheck(c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}

	fmt.Printf("%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != "ok" {
		fmt.Printf("   └─ %s\n", c.Hint)
	}
}

func checkConfig() DoctorCheck {
	config := GetConfig()
	if err := validateAppConfig(config); err != nil {
		return DoctorCheck{
			Name:    "Configuration",
			Status:  "fail",
			Message: fmt.Sprintf("Invalid: %v", err),
			Hint:    "Check your .taskdeck.yaml and TASKDECK_* environment variables",
		}
	}

	source := viper.ConfigFileUsed()
	if source == "" {
		source = "defaults"
	}
	return DoctorCheck{
		Name:    "Configuration",
		Status:  "ok",
		Message: fmt.Sprintf("Valid (%s, format %s)", source, config.Data.Format),
	}
}

func checkDataFile() DoctorCheck {
	path := GetTaskFilePath()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return DoctorCheck{
			Name:    "Data file",
			Status:  "warn",
			Message: fmt.Sprintf("Not created yet (%s)", path),
			Hint:    "It appears on the first add: taskdeck add \"Your first task\" --due 2025-12-31",
		}
	}
	if err != nil {
		return DoctorCheck{
			Name:    "Data file",
			Status:  "fail",
			Message: fmt.Sprintf("Unreadable: %v", err),
		}
	}

	return DoctorCheck{
		Name:    "Data file",
		Status:  "ok",
		Message: fmt.Sprintf("%s (%d bytes)", path, info.Size()),
	}
}

func checkChecksum() DoctorCheck {
	config := GetConfig()
	if config.Data.Format == store.FormatSQLite {
		return DoctorCheck{
			Name:    "Checksum",
			Status:  "ok",
			Message: "Not applicable for the sqlite backend",
		}
	}

	path := GetTaskFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DoctorCheck{
			Name:    "Checksum",
			Status:  "ok",
			Message: "No data file yet",
		}
	}

	ok, hasSidecar, err := store.VerifyChecksumFile(afero.NewOsFs(), path)
	if err != nil {
		return DoctorCheck{
			Name:    "Checksum",
			Status:  "fail",
			Message: fmt.Sprintf("Could not verify: %v", err),
		}
	}
	if !hasSidecar {
		return DoctorCheck{
			Name:    "Checksum",
			Status:  "warn",
			Message: "No checksum sidecar yet",
			Hint:    "Written automatically on the next save",
		}
	}
	if !ok {
		return DoctorCheck{
			Name:    "Checksum",
			Status:  "fail",
			Message: "Data file does not match its checksum",
			Hint:    "The file was edited outside taskdeck; loading will start from an empty list until the next save",
		}
	}

	return DoctorCheck{
		Name:    "Checksum",
		Status:  "ok",
		Message: "Data file matches its checksum",
	}
}

func checkSchema() DoctorCheck {
	config := GetConfig()
	if config.Data.Format != store.FormatJSON {
		return DoctorCheck{
			Name:    "Schema",
			Status:  "ok",
			Message: fmt.Sprintf("Not applicable for the %s format", config.Data.Format),
		}
	}

	path := GetTaskFilePath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		return DoctorCheck{
			Name:    "Schema",
			Status:  "ok",
			Message: "No data file yet",
		}
	}
	if err != nil {
		return DoctorCheck{
			Name:    "Schema",
			Status:  "fail",
			Message: fmt.Sprintf("Could not read data file: %v", err),
		}
	}

	if err := validateTasksJSON(data); err != nil {
		return DoctorCheck{
			Name:    "Schema",
			Status:  "fail",
			Message: fmt.Sprintf("Data file does not match the task schema: %v", err),
			Hint:    "Loading treats an unparseable file as empty; restore from a backup or fix the JSON",
		}
	}

	return DoctorCheck{
		Name:    "Schema",
		Status:  "ok",
		Message: "Data file matches the task schema",
	}
}

// validateTasksJSON validates raw data against tasksSchema. Both the bare
// array layout and the {"tasks": [...]} wrapper are accepted, matching
// what the file backend can decode.
func validateTasksJSON(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(tasksSchema)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	if wrapper, ok := payload.(map[string]interface{}); ok {
		if inner, ok := wrapper["tasks"]; ok {
			payload = inner
		}
	}

	return schema.Validate(payload)
}

func checkTaskRecords() DoctorCheck {
	tasks, err := loadTasksSnapshot()
	if err != nil {
		return DoctorCheck{
			Name:    "Task records",
			Status:  "fail",
			Message: fmt.Sprintf("Could not load tasks: %v", err),
		}
	}
	if len(tasks) == 0 {
		return DoctorCheck{
			Name:    "Task records",
			Status:  "ok",
			Message: "No tasks yet",
		}
	}

	var problems []string
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			problems = append(problems, fmt.Sprintf("duplicate id %q", t.ID))
		}
		seen[t.ID] = true
		if !models.ValidDate(t.DueDate) {
			problems = append(problems, fmt.Sprintf("task %s: due date %q is not a valid YYYY-MM-DD date", t.ID, t.DueDate))
		}
		if t.Status != "" {
			if _, err := models.ParseStatus(string(t.Status)); err != nil {
				problems = append(problems, fmt.Sprintf("task %s: unknown status %q", t.ID, t.Status))
			}
		}
		if t.Priority != "" {
			if _, err := models.ParsePriority(string(t.Priority)); err != nil {
				problems = append(problems, fmt.Sprintf("task %s: unknown priority %q", t.ID, t.Priority))
			}
		}
	}

	if len(problems) > 0 {
		return DoctorCheck{
			Name:    "Task records",
			Status:  "fail",
			Message: strings.Join(problems, "; "),
			Hint:    "Fix the records with taskdeck update, or edit the data file and re-run doctor",
		}
	}

	return DoctorCheck{
		Name:    "Task records",
		Status:  "ok",
		Message: fmt.Sprintf("%d tasks, all IDs unique, all fields valid", len(tasks)),
	}
}

func checkArchive() DoctorCheck {
	config := GetConfig()
	if _, err := os.Stat(config.Archive.Dir); os.IsNotExist(err) {
		return DoctorCheck{
			Name:    "Archive",
			Status:  "ok",
			Message: "Not created yet",
		}
	}

	archiveStore, err := GetArchiveStore()
	if err != nil {
		return DoctorCheck{
			Name:    "Archive",
			Status:  "fail",
			Message: fmt.Sprintf("Could not open: %v", err),
		}
	}
	defer func() { _ = archiveStore.Close() }()

	entries, err := archiveStore.List()
	if err != nil {
		return DoctorCheck{
			Name:    "Archive",
			Status:  "fail",
			Message: fmt.Sprintf("Could not read index: %v", err),
		}
	}

	return DoctorCheck{
		Name:    "Archive",
		Status:  "ok",
		Message: fmt.Sprintf("%d archived tasks (%s)", len(entries), config.Archive.Dir),
	}
}

func checkCrashLogs() DoctorCheck {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return DoctorCheck{
			Name:    "Crash logs",
			Status:  "warn",
			Message: fmt.Sprintf("Could not list: %v", err),
		}
	}
	if len(logs) == 0 {
		return DoctorCheck{
			Name:    "Crash logs",
			Status:  "ok",
			Message: "None",
		}
	}

	return DoctorCheck{
		Name:    "Crash logs",
		Status:  "warn",
		Message: fmt.Sprintf("%d crash log(s), most recent: %s", len(logs), logs[len(logs)-1]),
		Hint:    "Please report crashes at https://github.com/taskdeck/taskdeck/issues, then delete the logs",
	}
}

// loadTasksSnapshot reads the task list without taking the session lock,
// so doctor can run alongside another taskdeck process.
func loadTasksSnapshot() ([]models.Task, error) {
	config := GetConfig()
	path := GetTaskFilePath()

	var (
		backend store.Backend
		err     error
	)
	switch config.Data.Format {
	case store.FormatSQLite:
		backend, err = store.NewSQLiteBackend(path)
	default:
		backend, err = store.NewFileBackend(afero.NewOsFs(), path, config.Data.Format, store.ReadOnly())
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = backend.Close() }()

	return backend.Load()
}
