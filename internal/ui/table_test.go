package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/models"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"1", "Buy milk", "Pending"},
			{"2", "Pay electricity bill", "Completed"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])  // "ID" beats single-digit ids
	assert.Equal(t, 20, widths[1]) // "Pay electricity bill"
	assert.Equal(t, 9, widths[2])  // "Completed"
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"1", "This description is far longer than the permitted column width"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1]) // Capped at MaxWidth
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Buy milk"},
			{"2", "Pay bills"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Buy milk")
	assert.Contains(t, output, "Pay bills")
	assert.Contains(t, output, "─")
}

func TestTable_Render_EmptyMessage(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows:    [][]string{},
		Empty:   "No tasks to display.",
	}

	output := table.Render()

	assert.Contains(t, output, "No tasks to display.")
	assert.NotContains(t, output, "─")
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	output := table.Render()

	assert.Contains(t, output, "…")
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"1", "Buy milk"}, // Missing Status column
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Buy milk")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}

func TestTaskTable(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Buy milk", DueDate: "2024-01-05", Status: models.StatusPending, Priority: models.PriorityHigh},
		{ID: "2", Title: "legacy task", DueDate: "2023-06-01", Status: models.StatusPending},
	}

	table := TaskTable(tasks)

	assert.Equal(t, []string{"ID", "Title", "Description", "Due Date", "Status", "Priority"}, table.Headers)
	assert.Equal(t, "High", table.Rows[0][5])
	// A task without a priority displays as Medium.
	assert.Equal(t, "Medium", table.Rows[1][5])

	output := table.Render()
	assert.Contains(t, output, "2024-01-05")
}

func TestRenderTasks_Empty(t *testing.T) {
	output := RenderTasks(nil)
	assert.Contains(t, output, "No tasks to display.")
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		result := padRight(tc.input, tc.width)
		assert.Equal(t, tc.expected, result)
	}
}
