package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/store"
)

// RunBoard opens the interactive task board. It blocks until the user
// quits. Mutations (complete, delete) go straight through the store,
// so the data file stays current while the board is open.
func RunBoard(st *store.TaskStore) error {
	m := newBoardModel(st)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}

// Board filters, cycled with the number keys.
const (
	boardFilterAll       = "all"
	boardFilterPending   = "pending"
	boardFilterCompleted = "completed"
)

type boardModel struct {
	store     *store.TaskStore
	tasks     []models.Task // visible slice after filter and search
	cursor    int
	filter    string
	search    textinput.Model
	searching bool
	flash     string
	quit      bool
}

func newBoardModel(st *store.TaskStore) boardModel {
	search := textinput.New()
	search.Placeholder = "keyword"
	search.CharLimit = 64
	m := boardModel{
		store:  st,
		filter: boardFilterAll,
		search: search,
	}
	m.refresh()
	return m
}

// refresh recomputes the visible tasks and keeps the cursor in range.
func (m *boardModel) refresh() {
	var keep store.Predicate
	switch m.filter {
	case boardFilterPending:
		keep = store.IsPending
	case boardFilterCompleted:
		keep = store.IsCompleted
	}
	tasks := m.store.Filter(keep)

	if needle := strings.ToLower(strings.TrimSpace(m.search.Value())); needle != "" {
		matched := tasks[:0]
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Title), needle) ||
				strings.Contains(strings.ToLower(t.Description), needle) {
				matched = append(matched, t)
			}
		}
		tasks = matched
	}

	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.refresh()
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.refresh()
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "1":
		m.filter = boardFilterAll
		m.refresh()
	case "2":
		m.filter = boardFilterPending
		m.refresh()
	case "3":
		m.filter = boardFilterCompleted
		m.refresh()
	case "/":
		m.searching = true
		m.search.Focus()
		m.flash = ""
	case " ", "enter":
		if task, ok := m.current(); ok {
			done, err := m.store.MarkCompleted(task.ID)
			if err != nil {
				m.flash = StyleError.Render(fmt.Sprintf("Could not complete task %s: %v", task.ID, err))
			} else {
				m.flash = StyleSuccess.Render(fmt.Sprintf("Task %s marked as completed.", done.ID))
			}
			m.refresh()
		}
	case "d":
		if task, ok := m.current(); ok {
			if err := m.store.Delete(task.ID); err != nil {
				m.flash = StyleError.Render(fmt.Sprintf("Could not delete task %s: %v", task.ID, err))
			} else {
				m.flash = StyleWarning.Render(fmt.Sprintf("Task %s deleted.", task.ID))
			}
			m.refresh()
		}
	}
	return m, nil
}

func (m boardModel) current() (models.Task, bool) {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m boardModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder

	sum := m.store.Summary()
	b.WriteString("\n" + StyleHeader.Render("Task Board") +
		StyleSubtle.Render(fmt.Sprintf("  %d total, %d pending, %d completed", sum.Total, sum.Pending, sum.Completed)) + "\n\n")

	filterLine := fmt.Sprintf("Filter: %s", m.filter)
	if keyword := strings.TrimSpace(m.search.Value()); keyword != "" {
		filterLine += fmt.Sprintf("  Search: %q", keyword)
	}
	b.WriteString(" " + StyleSubtle.Render(filterLine) + "\n\n")

	if m.searching {
		b.WriteString(" Search: " + m.search.View() + "\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(" " + StyleSubtle.Render("No tasks to display.") + "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = StylePrimary.Render("▸ ")
		}
		mark := StyleWarning.Render("○")
		if t.Status == models.StatusCompleted {
			mark = StyleSuccess.Render("✓")
		}
		title := Truncate(t.Title, 48)
		if title == "" {
			title = StyleSubtle.Render("(untitled)")
		} else if i == m.cursor {
			title = StyleTitle.Render(title)
		}
		b.WriteString(fmt.Sprintf(" %s%s %-3s %s  %s  %s\n",
			cursor, mark, t.ID, StyleSubtle.Render(t.DueDate), title, PriorityText(t.Priority)))
	}

	if m.flash != "" {
		b.WriteString("\n " + m.flash + "\n")
	}

	b.WriteString("\n " + StyleSubtle.Render("↑/↓ move • space complete • d delete • / search • 1 all • 2 pending • 3 completed • q quit") + "\n")
	return b.String()
}
