package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string for a
// calendar date, counted in whole days from now's calendar day.
func RelativeDateFrom(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return "--"
	}
	days := domain.DateOf(now).DaysUntil(d)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateStyled returns RelativeDateFrom with urgency coloring applied.
func RelativeDateStyled(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return Dim("--")
	}
	text := RelativeDateFrom(d, now)
	days := domain.DateOf(now).DaysUntil(d)

	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate returns an absolute date like "Jan 2, 2006", or "Today" /
// "Yesterday" relative to now.
func HumanDate(d domain.Date, now time.Time) string {
	if d.IsZero() {
		return "--"
	}
	today := domain.DateOf(now)
	switch today.DaysUntil(d) {
	case 0:
		return "Today"
	case -1:
		return "Yesterday"
	}
	return d.StartIn(time.UTC).Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(ts domain.Timestamp, now time.Time) string {
	if ts.IsZero() {
		return "--"
	}
	diff := now.Sub(ts.Time)

	switch {
	case diff < 0:
		return ts.In(now.Location()).Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return ts.In(now.Location()).Format("Jan 2, 2006 15:04")
	}
}

// FormatID renders a numeric server ID as a dim "#12".
func FormatID(id int64) string {
	return StyleDim.Render(fmt.Sprintf("#%d", id))
}

// Truncate shortens s to width visible cells, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// FirstLine returns the first non-empty line of a multi-line text.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
