package cli

import (
	"context"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m *appModel) openProjectForm(draft domain.Project) tea.Cmd {
	m.ctrl().Dispatch(appstate.ModalOpened{Modal: appstate.ModalProjectForm, ProjectDraft: &draft})
	m.project, m.task = newProjectFormValues(draft), nil
	m.form = projectForm(m.project)
	return m.form.Init()
}

func (m *appModel) openTaskForm(draft domain.Task) tea.Cmd {
	m.ctrl().Dispatch(appstate.ModalOpened{Modal: appstate.ModalTaskForm, TaskDraft: &draft})
	m.task, m.project = newTaskFormValues(draft), nil
	m.form = taskForm(m.task)
	return m.form.Init()
}

// rebuildForm recreates the open form around the values already entered.
func (m *appModel) rebuildForm(modal appstate.Modal) tea.Cmd {
	switch {
	case modal == appstate.ModalProjectForm && m.project != nil:
		m.form = projectForm(m.project)
	case modal == appstate.ModalTaskForm && m.task != nil:
		m.form = taskForm(m.task)
	default:
		return nil
	}
	return m.form.Init()
}

func (m *appModel) closeModal() {
	m.ctrl().Dispatch(appstate.ModalClosed{})
	m.form, m.project, m.task = nil, nil, nil
	m.editor.Blur()
}

func (m *appModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		m.closeModal()
		return nil
	}
	return m.updateForm(msg)
}

func (m *appModel) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return tea.Batch(cmd, func() tea.Msg { return submitFormMsg{} })
	}
	return cmd
}

// submitForm sends the open form's draft. Parse failures and server errors
// keep the form open.
func (m *appModel) submitForm() tea.Cmd {
	switch {
	case m.project != nil:
		p, err := m.project.project()
		if err != nil {
			m.ctrl().Dispatch(appstate.ErrorRaised{Message: err.Error()})
			return m.rebuildForm(appstate.ModalProjectForm)
		}
		return m.run("save-project", func(ctx context.Context) error {
			_, err := m.ctrl().SaveProject(ctx, p)
			return err
		})
	case m.task != nil:
		t, err := m.task.task()
		if err != nil {
			m.ctrl().Dispatch(appstate.ErrorRaised{Message: err.Error()})
			return m.rebuildForm(appstate.ModalTaskForm)
		}
		return m.run("save-task", func(ctx context.Context) error {
			_, err := m.ctrl().SaveTask(ctx, t)
			return err
		})
	}
	return nil
}

func (m *appModel) openEditor(modal appstate.Modal, text string) tea.Cmd {
	m.ctrl().Dispatch(appstate.ModalOpened{Modal: modal})
	m.editor.Reset()
	m.editor.SetValue(text)
	m.resizeWidgets()
	return m.editor.Focus()
}

func (m *appModel) handleEditorKey(msg tea.KeyMsg, modal appstate.Modal) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.closeModal()
		return nil
	case key.Matches(msg, m.keys.Save):
		text := m.editor.Value()
		save := m.ctrl().SaveStrategy
		op := "save-strategy"
		if modal == appstate.ModalMarkdownEditor {
			save = m.ctrl().SaveMarkdown
			op = "save-markdown"
		}
		return m.run(op, func(ctx context.Context) error { return save(ctx, text) })
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

// openMarkdownView shows the markdown plan rendered, read-only, in the
// history viewport.
func (m *appModel) openMarkdownView(p domain.Project) {
	m.ctrl().Dispatch(appstate.ModalOpened{Modal: appstate.ModalMarkdownView})
	m.resizeWidgets()
	m.history.SetContent(formatter.RenderMarkdownOrEmpty(p.MarkdownPlan, m.history.Width, "No markdown plan yet. Press m to write one."))
	m.history.GotoTop()
}

func (m *appModel) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc || key.Matches(msg, m.keys.Quit) {
		m.closeModal()
		return nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return cmd
}
