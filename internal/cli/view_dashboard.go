package cli

import (
	"context"
	"fmt"
	"strings"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) handleDashboardKey(msg tea.KeyMsg, state appstate.State) tea.Cmd {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	visible := appstate.VisibleProjects(state)
	var current *domain.Project
	if m.cursor < len(visible) {
		current = &visible[m.cursor]
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(state.Search)
		return m.search.Focus()
	case key.Matches(msg, m.keys.Back):
		if state.Search != "" {
			m.search.SetValue("")
			m.ctrl().Dispatch(appstate.SearchChanged{Term: ""})
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Reload):
		return m.run("load-projects", m.ctrl().LoadProjects)
	case key.Matches(msg, m.keys.New):
		return m.openProjectForm(m.ctrl().NewProjectDraft(0))
	case key.Matches(msg, m.keys.Edit):
		if current != nil {
			return m.openProjectForm(*current)
		}
	case key.Matches(msg, m.keys.Delete):
		if current != nil {
			m.confirmDeleteProject(*current)
		}
	case key.Matches(msg, m.keys.Open):
		if current != nil {
			return m.openProject(current.ID)
		}
	}
	return nil
}

// handleSearchKey edits the search term; every change filters the list.
func (m *appModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl().Dispatch(appstate.SearchChanged{Term: ""})
		m.cursor = 0
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state().Search {
		m.ctrl().Dispatch(appstate.SearchChanged{Term: m.search.Value()})
		m.cursor = 0
	}
	return cmd
}

func (m *appModel) openProject(id int64) tea.Cmd {
	m.col, m.row = 0, 0
	return m.run("open-project", func(ctx context.Context) error {
		return m.ctrl().OpenProject(ctx, id)
	})
}

func (m *appModel) confirmDeleteProject(p domain.Project) {
	m.confirm = &confirmPrompt{
		question: fmt.Sprintf("Delete project %s? Sub-projects become top-level.", formatter.Bold(p.Name)),
		op:       "delete-project",
		run: func(ctx context.Context) error {
			return m.ctrl().DeleteProject(ctx, p.ID)
		},
	}
}

func (m *appModel) dashboardView(state appstate.State) string {
	var b strings.Builder

	if m.searching {
		b.WriteString("  " + m.search.View() + "\n\n")
	} else if state.Search != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + state.Search + formatter.Dim("  (esc to clear)") + "\n\n")
	}

	visible := appstate.VisibleProjects(state)
	if state.LoadingProjects && len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("Loading projects...") + "\n")
		return b.String()
	}
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found. Press n to create one.") + "\n")
		return b.String()
	}

	now := m.app.now()
	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		subs := ""
		if n := len(p.ChildProjects); n > 0 {
			subs = formatter.StyleBlue.Render(fmt.Sprintf("%d sub", n))
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %-8s %s\n",
			cursor,
			formatter.FormatID(p.ID),
			nameStyle.Render(padRight(p.Name, 28)),
			padRight(formatter.StatusPill(p.Status), 12),
			subs,
			formatter.RelativeDateStyled(p.EndDate, now),
		))
	}
	return b.String()
}

// padRight pads s to a visible width, truncating when longer.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return formatter.Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
