package cli

import (
	"context"
	"strings"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// opDoneMsg reports that a controller use case started by the TUI finished.
// The use case has already reduced its outcome into the store.
type opDoneMsg struct {
	op  string
	err error
}

// submitFormMsg is sent when the open project or task form completes.
type submitFormMsg struct{}

// confirmPrompt is a pending y/n question, used before deletions.
type confirmPrompt struct {
	question string
	op       string
	run      func(ctx context.Context) error
}

// appModel is the root bubbletea Model for the TUI. Everything the
// dashboard shows comes from the controller's state; the model only keeps
// widget state (cursors, inputs, the open form).
type appModel struct {
	ctx  context.Context
	app  *App
	keys keyMap
	help help.Model
	spin spinner.Model

	width, height int

	search    textinput.Model
	searching bool
	cursor    int

	col, row int

	form    *huh.Form
	project *projectFormValues
	task    *taskFormValues
	editor  textarea.Model
	history viewport.Model
	confirm *confirmPrompt

	busy     int
	quitting bool
}

func newAppModel(ctx context.Context, app *App) *appModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search projects"

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = formatter.StylePurple

	return &appModel{
		ctx:     ctx,
		app:     app,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spin:    spin,
		search:  search,
		editor:  textarea.New(),
		history: viewport.New(0, 0),
		width:   100,
		height:  30,
	}
}

func (m *appModel) ctrl() *service.Controller { return m.app.Controller }

func (m *appModel) state() appstate.State { return m.app.Controller.State() }

// run starts a use case in the background. Its result comes back as an
// opDoneMsg.
func (m *appModel) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	m.busy++
	ctx := m.ctx
	work := func() tea.Msg { return opDoneMsg{op: op, err: fn(ctx)} }
	if m.busy == 1 {
		return tea.Batch(work, m.spin.Tick)
	}
	return work
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *appModel) Init() tea.Cmd {
	return m.run("load-projects", m.ctrl().LoadProjects)
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeWidgets()
		return m, nil

	case opDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		return m, m.syncWidgets(msg)

	case submitFormMsg:
		return m, m.submitForm()

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Cursor blinks and other widget messages.
	return m, m.forwardToWidget(msg)
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m, m.handleConfirmKey(msg)
	}

	state := m.state()
	switch state.Modal {
	case appstate.ModalProjectForm, appstate.ModalTaskForm:
		return m, m.handleFormKey(msg)
	case appstate.ModalStrategyEditor, appstate.ModalMarkdownEditor:
		return m, m.handleEditorKey(msg, state.Modal)
	case appstate.ModalTaskHistory, appstate.ModalStrategyHistory, appstate.ModalMarkdownView:
		return m, m.handleHistoryKey(msg)
	}

	if key.Matches(msg, m.keys.Back) && state.Banner != "" {
		m.ctrl().Dispatch(appstate.ErrorCleared{})
		return m, nil
	}

	if state.View == appstate.ViewDetail {
		return m, m.handleDetailKey(msg, state)
	}
	return m, m.handleDashboardKey(msg, state)
}

func (m *appModel) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	c := m.confirm
	m.confirm = nil
	if key.Matches(msg, m.keys.Confirm) {
		return m.run(c.op, c.run)
	}
	return nil
}

func (m *appModel) forwardToWidget(msg tea.Msg) tea.Cmd {
	state := m.state()
	var cmd tea.Cmd
	switch {
	case m.form != nil && (state.Modal == appstate.ModalProjectForm || state.Modal == appstate.ModalTaskForm):
		return m.updateForm(msg)
	case state.Modal == appstate.ModalStrategyEditor || state.Modal == appstate.ModalMarkdownEditor:
		m.editor, cmd = m.editor.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

// syncWidgets reconciles widget state with the store after a use case.
func (m *appModel) syncWidgets(done opDoneMsg) tea.Cmd {
	state := m.state()
	m.clampCursors(state)

	switch state.Modal {
	case appstate.ModalNone:
		m.form, m.project, m.task = nil, nil, nil
		m.editor.Blur()
	case appstate.ModalProjectForm, appstate.ModalTaskForm:
		// A failed save leaves the modal open; rebuild the completed form
		// so the user can correct and resubmit.
		if done.err != nil {
			return m.rebuildForm(state.Modal)
		}
	case appstate.ModalTaskHistory, appstate.ModalStrategyHistory:
		if done.err != nil {
			m.closeModal()
			return nil
		}
	}

	switch state.Modal {
	case appstate.ModalTaskHistory:
		m.history.SetContent(formatter.FormatTaskHistory(state.TaskHistory, m.app.now()))
		m.history.GotoTop()
	case appstate.ModalStrategyHistory:
		m.history.SetContent(formatter.FormatStrategyHistory(state.StrategyHistory, m.app.now()))
		m.history.GotoTop()
	}
	return nil
}

func (m *appModel) clampCursors(state appstate.State) {
	visible := appstate.VisibleProjects(state)
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.col >= len(domain.BoardColumns) {
		m.col = len(domain.BoardColumns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	n := len(appstate.Board(state)[domain.BoardColumns[m.col]])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *appModel) resizeWidgets() {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	m.editor.SetWidth(w)
	m.editor.SetHeight(h)
	m.history.Width = w
	m.history.Height = h
	m.search.Width = w / 2
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}
	state := m.state()

	var b strings.Builder
	b.WriteString(m.headerView(state) + "\n")
	if state.Banner != "" {
		b.WriteString(formatter.Banner(state.Banner) + formatter.Dim("  (esc to dismiss)") + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.confirm != nil:
		b.WriteString(formatter.RenderBox("Confirm", m.confirm.question+"\n\n"+formatter.Dim("y to confirm, any other key to cancel")))
	case state.Modal != appstate.ModalNone:
		b.WriteString(m.modalView(state))
	case state.View == appstate.ViewDetail:
		b.WriteString(m.detailView(state))
	default:
		b.WriteString(m.dashboardView(state))
	}

	b.WriteString("\n\n" + m.help.ShortHelpView(m.helpBindings(state)))
	return b.String()
}

func (m *appModel) headerView(state appstate.State) string {
	crumbs := []string{formatter.StyleHeader.Render("PLANNER")}
	if p, ok := appstate.SelectedProject(state); ok && state.View == appstate.ViewDetail {
		crumbs = append(crumbs, formatter.Bold(p.Name))
	}
	header := strings.Join(crumbs, formatter.Dim(" › "))
	if m.busy > 0 || state.LoadingProjects || state.LoadingTasks {
		header += "  " + m.spin.View()
	}
	return header + "\n" + formatter.Dim(strings.Repeat("─", max(lipgloss.Width(header), m.width-2)))
}

func (m *appModel) helpBindings(state appstate.State) []key.Binding {
	switch {
	case m.confirm != nil:
		return []key.Binding{m.keys.Confirm}
	case state.Modal == appstate.ModalProjectForm || state.Modal == appstate.ModalTaskForm:
		return m.keys.formHelp()
	case state.Modal == appstate.ModalStrategyEditor || state.Modal == appstate.ModalMarkdownEditor:
		return m.keys.editorHelp()
	case state.Modal != appstate.ModalNone:
		return m.keys.historyHelp()
	case state.View == appstate.ViewDetail:
		return m.keys.detailHelp()
	default:
		return m.keys.dashboardHelp()
	}
}

func (m *appModel) modalView(state appstate.State) string {
	switch state.Modal {
	case appstate.ModalProjectForm, appstate.ModalTaskForm:
		if m.form == nil {
			return ""
		}
		return formatter.RenderBox("", m.form.View())
	case appstate.ModalStrategyEditor:
		return formatter.RenderBox("Strategy plan", m.editor.View())
	case appstate.ModalMarkdownEditor:
		return formatter.RenderBox("Markdown plan", m.editor.View())
	case appstate.ModalTaskHistory:
		title := "Task history"
		if t, ok := appstate.Task(state, state.HistoryTaskID); ok {
			title += " · " + t.Title
		}
		return formatter.RenderBox(title, m.history.View())
	case appstate.ModalStrategyHistory:
		return formatter.RenderBox("Strategy history", m.history.View())
	case appstate.ModalMarkdownView:
		title := "Markdown plan"
		if p, ok := appstate.SelectedProject(state); ok {
			title += " · " + p.Name
		}
		return formatter.RenderBox(title, m.history.View())
	}
	return ""
}

// runTUI starts the interactive dashboard.
func runTUI(ctx context.Context, app *App) error {
	m := newAppModel(ctx, app)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
