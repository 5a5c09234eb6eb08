package cli

import (
	"context"
	"testing"
	"time"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with planner-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
	app *App
}

// NewTestDriver constructs the appModel, sets the terminal size and drains
// Init(), which loads the project list from the test server.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(context.Background(), app)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(5*time.Second))
	d.DrainInit()

	return &TestDriver{Driver: d, app: app}
}

func (d *TestDriver) appModel() *appModel {
	return d.Model.(*appModel)
}

// State returns the controller state the TUI renders.
func (d *TestDriver) State() appstate.State {
	return d.app.Controller.State()
}

// IsQuitting reports whether the model or the driver saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// SubmitProjectForm fills the open project form and submits it, bypassing
// huh's field-by-field key handling.
func (d *TestDriver) SubmitProjectForm(fill func(v *projectFormValues)) {
	d.T.Helper()
	m := d.appModel()
	if m.project == nil {
		d.T.Fatal("no project form open")
	}
	fill(m.project)
	d.Send(submitFormMsg{})
}

// SubmitTaskForm fills the open task form and submits it.
func (d *TestDriver) SubmitTaskForm(fill func(v *taskFormValues)) {
	d.T.Helper()
	m := d.appModel()
	if m.task == nil {
		d.T.Fatal("no task form open")
	}
	fill(m.task)
	d.Send(submitFormMsg{})
}

// PressCtrlS sends Ctrl+S, the editor save key.
func (d *TestDriver) PressCtrlS() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlS})
}
