package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)
)

// StatusText renders a task status with its usual color: green for
// completed, yellow for pending.
func StatusText(s models.TaskStatus) string {
	if s == models.StatusCompleted {
		return StyleSuccess.Render(string(s))
	}
	return StyleWarning.Render(string(s))
}

// PriorityText renders a priority with its usual color.
func PriorityText(p models.TaskPriority) string {
	switch p {
	case models.PriorityHigh:
		return StyleError.Render(string(p))
	case models.PriorityLow:
		return StyleSubtle.Render(string(p))
	case "":
		return StyleWarning.Render(string(models.PriorityMedium))
	default:
		return StyleWarning.Render(string(p))
	}
}
