package formatter

import (
	"strings"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a project hierarchy display.
type TreeItem struct {
	ID     int64
	Title  string
	Level  int
	IsLast bool
	Status domain.ProjectStatus
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// ProjectTree flattens top-level projects and their one level of children
// into tree items. Items with an end date show it as their detail badge.
func ProjectTree(projects []domain.Project) []TreeItem {
	var items []TreeItem
	for _, p := range projects {
		items = append(items, TreeItem{ID: p.ID, Title: p.Name, Status: p.Status, Detail: p.EndDate.String()})
		for i, c := range p.ChildProjects {
			items = append(items, TreeItem{
				ID:     c.ID,
				Title:  c.Name,
				Level:  1,
				IsLast: i == len(p.ChildProjects)-1,
				Status: c.Status,
				Detail: c.EndDate.String(),
			})
		}
	}
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Completed projects get a green ✔ prefix and dimmed title,
// active ones a yellow ▶, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type line struct {
		content string
		badge   string
	}

	lines := make([]line, len(items))
	maxWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.ID > 0 {
			title = FormatID(item.ID) + " " + title
		}

		marker := ""
		switch item.Status {
		case domain.ProjectCompleted:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.ProjectAbandoned:
			marker = StyleDim.Render("✖ ")
			title = Dim(title)
		case domain.ProjectActive:
			marker = StyleYellowBold.Render("▶ ")
		}

		lines[idx].content = prefix + marker + title
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(lines[idx].content); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.content)
		if l.badge != "" {
			b.WriteString(strings.Repeat(" ", maxWidth-lipgloss.Width(l.content)) + "  " + l.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
