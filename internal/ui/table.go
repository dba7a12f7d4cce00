package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/models"
)

// Table renders data in a compact fixed-width layout for the
// terminal.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int    // Max width per column (0 = auto)
	Empty    string // Shown instead of the table when there are no rows
}

// ColumnWidths calculates column widths from headers and content,
// capped at MaxWidth when set.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			if widths[i] > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Rows) == 0 && t.Empty != "" {
		return StyleSubtle.Render(t.Empty) + "\n"
	}
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, dimStyle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			// Truncate if needed (guard against zero/small widths)
			if widths[i] >= 2 && len(val) > widths[i] {
				val = val[:widths[i]-1] + "…"
			} else if widths[i] == 1 && len(val) > 1 {
				val = "…"
			}
			cells = append(cells, cellStyle.Render(padRight(val, widths[i])))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// TaskTable builds the standard six-column task table. Tasks without
// a priority display as Medium.
func TaskTable(tasks []models.Task) *Table {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		priority := t.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		rows = append(rows, []string{t.ID, t.Title, t.Description, t.DueDate, string(t.Status), string(priority)})
	}
	return &Table{
		Headers:  []string{"ID", "Title", "Description", "Due Date", "Status", "Priority"},
		Rows:     rows,
		MaxWidth: 40,
		Empty:    "No tasks to display.",
	}
}

// RenderTasks renders tasks with the standard table layout.
func RenderTasks(tasks []models.Task) string {
	return TaskTable(tasks).Render()
}
