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

// selectedTask returns the task under the board cursor.
func (m *appModel) selectedTask(state appstate.State) (domain.Task, bool) {
	column := appstate.Board(state)[domain.BoardColumns[m.col]]
	if m.row < 0 || m.row >= len(column) {
		return domain.Task{}, false
	}
	return column[m.row], true
}

func (m *appModel) handleDetailKey(msg tea.KeyMsg, state appstate.State) tea.Cmd {
	p, ok := appstate.SelectedProject(state)
	if !ok {
		return nil
	}
	task, hasTask := m.selectedTask(state)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.ctrl().Dispatch(appstate.BackToDashboard{})
		m.clampCursors(m.state())
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampCursors(state)
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(domain.BoardColumns)-1 {
			m.col++
			m.clampCursors(state)
		}
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursors(state)
	case key.Matches(msg, m.keys.Reload):
		return m.openProject(p.ID)

	case key.Matches(msg, m.keys.MovePrev):
		if hasTask {
			return m.moveTask(task, task.Status.Prev())
		}
	case key.Matches(msg, m.keys.MoveNext):
		if hasTask {
			return m.moveTask(task, task.Status.Next())
		}
	case key.Matches(msg, m.keys.Complete):
		if hasTask {
			return m.moveTask(task, domain.TaskCompleted)
		}

	case key.Matches(msg, m.keys.AddTask):
		return m.openTaskForm(m.ctrl().NewTaskDraft(p.ID))
	case key.Matches(msg, m.keys.Edit):
		if hasTask {
			return m.openTaskForm(task)
		}
	case key.Matches(msg, m.keys.Delete):
		if hasTask {
			m.confirm = &confirmPrompt{
				question: fmt.Sprintf("Delete task %s?", formatter.Bold(task.Title)),
				op:       "delete-task",
				run: func(ctx context.Context) error {
					return m.ctrl().DeleteTask(ctx, task.ID)
				},
			}
		}
	case key.Matches(msg, m.keys.TaskHistory):
		if hasTask {
			m.history.SetContent(formatter.Dim("Loading history..."))
			return m.run("load-task-history", func(ctx context.Context) error {
				_, err := m.ctrl().LoadTaskHistory(ctx, task.ID)
				return err
			})
		}
	case key.Matches(msg, m.keys.StrategyHistory):
		m.history.SetContent(formatter.Dim("Loading history..."))
		return m.run("load-strategy-history", func(ctx context.Context) error {
			_, err := m.ctrl().LoadStrategyHistory(ctx)
			return err
		})
	case key.Matches(msg, m.keys.EditStrategy):
		return m.openEditor(appstate.ModalStrategyEditor, p.StrategyPlan)
	case key.Matches(msg, m.keys.EditMarkdown):
		return m.openEditor(appstate.ModalMarkdownEditor, p.MarkdownPlan)
	case key.Matches(msg, m.keys.ViewMarkdown):
		m.openMarkdownView(p)
	case key.Matches(msg, m.keys.AddSubProject):
		return m.openProjectForm(m.ctrl().NewProjectDraft(p.ID))
	case key.Matches(msg, m.keys.EditProject):
		return m.openProjectForm(p)
	case key.Matches(msg, m.keys.Parent):
		if !p.IsTopLevel() {
			return m.openProject(p.ParentProjectID)
		}
	}
	return nil
}

// moveTask applies the status change at once and sends it in the
// background; a server failure reverts it and raises the banner.
func (m *appModel) moveTask(task domain.Task, to domain.TaskStatus) tea.Cmd {
	move, err := m.ctrl().BeginMove(task.ID, to)
	if err != nil || move == nil {
		return nil
	}
	m.followTask(task.ID)
	return m.run("move-task", move.Finish)
}

// followTask moves the board cursor to wherever a task now sits. Tasks that
// left the board (completed) leave the cursor in place.
func (m *appModel) followTask(id int64) {
	board := appstate.Board(m.state())
	for c, st := range domain.BoardColumns {
		for r, t := range board[st] {
			if t.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
	m.clampCursors(m.state())
}

func (m *appModel) detailView(state appstate.State) string {
	p, ok := appstate.SelectedProject(state)
	if !ok {
		return ""
	}
	now := m.app.now()

	var b strings.Builder

	title := formatter.Bold(p.Name) + "  " + formatter.StatusPill(p.Status)
	if !p.IsTopLevel() {
		parent := fmt.Sprintf("#%d", p.ParentProjectID)
		if pp, found := domain.FindProject(state.Projects, p.ParentProjectID); found {
			parent = pp.Name
		}
		title += "  " + formatter.Dim("in ") + formatter.StylePurple.Render(parent)
	}
	b.WriteString(title + "\n")
	if !p.StartDate.IsZero() || !p.EndDate.IsZero() {
		b.WriteString(formatter.Dim(fmt.Sprintf("%s → %s", dateOrDash(p.StartDate), dateOrDash(p.EndDate))) + "\n")
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		b.WriteString(formatter.StyleFg.Render(d) + "\n")
	}
	b.WriteString("\n")

	grid := formatter.FormatStatsGrid(appstate.Stats(state, now))
	side := m.plansPanel(p)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, "   ", side) + "\n\n")

	if state.LoadingTasks && len(state.Tasks) == 0 {
		b.WriteString(formatter.Dim("Loading tasks...") + "\n")
		return b.String()
	}

	selected := int64(0)
	if t, found := m.selectedTask(state); found {
		selected = t.ID
	}
	colWidth := (m.width - 2) / len(domain.BoardColumns)
	if colWidth < 20 {
		colWidth = 20
	}
	b.WriteString(formatter.FormatBoard(appstate.Board(state), formatter.BoardOptions{
		ColumnWidth: colWidth,
		SelectedID:  selected,
		Now:         now,
	}))
	return b.String()
}

func (m *appModel) plansPanel(p domain.Project) string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render("STRATEGY") + "\n")
	if s := formatter.FirstLine(p.StrategyPlan); s != "" {
		b.WriteString(formatter.StyleFg.Render(formatter.Truncate(s, 40)) + "\n")
	} else {
		b.WriteString(formatter.Dim("none (p to write)") + "\n")
	}

	b.WriteString(formatter.StyleHeader.Render("MARKDOWN") + "\n")
	if s := formatter.FirstLine(p.MarkdownPlan); s != "" {
		b.WriteString(formatter.StyleFg.Render(formatter.Truncate(s, 40)) + formatter.Dim("  v to read") + "\n")
	} else {
		b.WriteString(formatter.Dim("none (m to write)") + "\n")
	}

	if p.HasChildren() {
		b.WriteString(formatter.StyleHeader.Render("SUB-PROJECTS") + "\n")
		b.WriteString(formatter.RenderTree(formatter.ProjectTree(p.ChildProjects)))
	}
	return b.String()
}

func dateOrDash(d domain.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.String()
}
