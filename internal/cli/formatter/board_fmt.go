package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

const defaultColumnWidth = 28

// BoardOptions controls kanban rendering.
type BoardOptions struct {
	// Columns to draw; defaults to domain.BoardColumns.
	Columns []domain.TaskStatus
	// ColumnWidth is the outer width of each column.
	ColumnWidth int
	// SelectedID highlights one task card. Zero selects nothing.
	SelectedID int64
	Now        time.Time
}

// FormatBoard renders tasks as kanban columns side by side. Completed tasks
// are summarized under the board rather than drawn as a column unless the
// caller asks for that column explicitly.
func FormatBoard(board domain.Board, opts BoardOptions) string {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = domain.BoardColumns
	}
	width := opts.ColumnWidth
	if width <= 0 {
		width = defaultColumnWidth
	}

	rendered := make([]string, 0, len(columns))
	for _, st := range columns {
		rendered = append(rendered, renderColumn(st, board[st], width, opts))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	showsCompleted := false
	for _, st := range columns {
		if st == domain.TaskCompleted {
			showsCompleted = true
		}
	}
	if done := len(board[domain.TaskCompleted]); done > 0 && !showsCompleted {
		out += "\n" + StyleGreen.Render(fmt.Sprintf("✔ %d completed", done))
	}
	return out
}

func renderColumn(status domain.TaskStatus, tasks []domain.Task, width int, opts BoardOptions) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))) + "\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", inner)) + "\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("empty"))
	}
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderCard(t, inner, t.ID == opts.SelectedID, opts.Now))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}

func renderCard(t domain.Task, width int, selected bool, now time.Time) string {
	cursor := "  "
	title := StyleFg.Render(Truncate(t.Title, width-2))
	if selected {
		cursor = StyleGreen.Render("▸ ")
		title = StyleBold.Render(Truncate(t.Title, width-2))
	}

	due := Dim("no due date")
	if !t.DueDate.IsZero() {
		due = RelativeDateStyled(t.DueDate, now)
		if stats.IsOverdue(t, now) {
			due = StyleRed.Render("overdue " + RelativeDateFrom(t.DueDate, now))
		}
	}

	return cursor + title + "\n  " + PriorityBadge(t.Priority) + "  " + due
}

// FormatTaskList renders tasks as a table ordered as given.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}
	headers := []string{"ID", "TITLE", "PRIORITY", "STATUS", "DUE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := RelativeDateStyled(t.DueDate, now)
		if stats.IsOverdue(t, now) {
			due = StyleRed.Render("⚠ " + RelativeDateFrom(t.DueDate, now))
		}
		rows = append(rows, []string{
			FormatID(t.ID),
			Bold(Truncate(t.Title, 48)),
			PriorityBadge(t.Priority),
			TaskStatusPill(t.Status),
			due,
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders one task's fields.
func FormatTaskDetail(t domain.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title) + "  " + FormatID(t.ID) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), TaskStatusPill(t.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PRIORITY"), PriorityBadge(t.Priority)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DUE     "), RelativeDateStyled(t.DueDate, now)))
	if desc := strings.TrimSpace(t.Description); desc != "" {
		b.WriteString("\n" + StyleFg.Render(desc) + "\n")
	}
	return RenderBox("Task", b.String())
}
