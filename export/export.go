// Package export renders a task list into interchange formats. It is
// pure over its input: callers pass the tasks to write, typically the
// store's current list or a filtered view of it.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"

	"github.com/taskdeck/taskdeck/models"
)

// Supported output formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// DefaultPath is the fallback destination when the caller gives no
// path, matching the historical export location.
const DefaultPath = "tasks_export.csv"

// Header is the CSV column order. Markdown tables use it too.
var Header = []string{"ID", "Title", "Description", "Due Date", "Status", "Priority"}

// Render serializes tasks in the given format.
func Render(tasks []models.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return renderCSV(tasks)
	case FormatJSON:
		return json.MarshalIndent(tasksOrEmpty(tasks), "", "  ")
	case FormatMarkdown, "md":
		return renderMarkdown(tasks), nil
	case FormatPDF:
		return renderPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown export format %q, supported formats are csv, json, markdown, pdf", format)
	}
}

// WriteFile renders tasks and writes them to path. An empty format is
// inferred from the path extension, falling back to CSV.
func WriteFile(filesystem afero.Fs, tasks []models.Task, path, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	data, err := Render(tasks, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(filesystem, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}

// FormatFromPath maps a file extension to an export format. Unknown
// extensions fall back to CSV, the historical default.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	case ".pdf":
		return FormatPDF
	default:
		return FormatCSV
	}
}

func renderCSV(tasks []models.Task) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range tasks {
		if err := w.Write(row(t)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row for task %s: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return []byte(b.String()), nil
}

func renderMarkdown(tasks []models.Task) []byte {
	var b strings.Builder
	b.WriteString("| " + strings.Join(Header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(Header)) + "\n")
	for _, t := range tasks {
		cells := row(t)
		for i, c := range cells {
			cells[i] = strings.ReplaceAll(c, "|", "\\|")
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return []byte(b.String())
}

func renderPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		line := fmt.Sprintf("[%s] %s (due %s) %s/%s", t.ID, t.Title, t.DueDate, t.Status, priorityOrDefault(t))
		pdf.MultiCell(0, 6, line, "0", "L", false)
		if t.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, "    "+t.Description, "0", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func row(t models.Task) []string {
	return []string{t.ID, t.Title, t.Description, t.DueDate, string(t.Status), string(priorityOrDefault(t))}
}

// priorityOrDefault mirrors how readers of old data files treat a
// missing priority.
func priorityOrDefault(t models.Task) models.TaskPriority {
	if t.Priority == "" {
		return models.PriorityMedium
	}
	return t.Priority
}

func tasksOrEmpty(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}
