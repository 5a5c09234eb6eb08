package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored status indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectDraft:
		return StyleBlue.Render("○ Draft")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectAbandoned:
		return StyleDim.Render("✖ Abandoned")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusPill returns a colored status indicator for a task status.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskToDo:
		return StyleBlue.Render("○ To Do")
	case domain.TaskInProgress:
		return StyleYellow.Render("▶ In Progress")
	case domain.TaskReview:
		return StylePurple.Render("◆ Review")
	case domain.TaskCompleted:
		return StyleGreen.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityColor returns the style used for a task priority.
func PriorityColor(p domain.TaskPriority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityBadge returns a compact colored priority label such as "▲ HIGH".
func PriorityBadge(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ HIGH")
	case domain.PriorityMedium:
		return StyleYellow.Render("● MEDIUM")
	case domain.PriorityLow:
		return StyleGreen.Render("▼ LOW")
	default:
		return StyleDim.Render("--")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Banner renders an error banner line.
func Banner(message string) string {
	return StyleRed.Render("✖ " + message)
}
