package cli

import (
	"context"
	"testing"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_DashboardLoadsOnStartup(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)

	d := NewTestDriver(t, app)

	assert.Equal(t, appstate.ViewDashboard, d.State().View)
	view := d.View()
	assert.Contains(t, view, "PLANNER")
	assert.Contains(t, view, "Website")
	assert.NotContains(t, view, "Loading projects...")
}

func TestTUI_EmptyDashboard(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	assert.Contains(t, d.View(), "No projects found. Press n to create one.")
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_SearchFiltersDashboard(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	seedProject(t, app, "Garden", 0)
	d := NewTestDriver(t, app)

	d.PressKey('/')
	d.Type("gar")

	assert.Equal(t, "gar", d.State().Search)
	view := d.View()
	assert.Contains(t, view, "Garden")
	assert.NotContains(t, view, "Website")

	// Typing 'q' while searching edits the term rather than quitting.
	d.PressKey('q')
	assert.False(t, d.IsQuitting())
	assert.Equal(t, "garq", d.State().Search)

	d.PressEsc()
	assert.Empty(t, d.State().Search)
	assert.Contains(t, d.View(), "Website")
}

func TestTUI_SearchEnterKeepsFilter(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	seedProject(t, app, "Garden", 0)
	d := NewTestDriver(t, app)

	d.PressKey('/')
	d.Type("web")
	d.PressEnter()

	assert.Equal(t, "web", d.State().Search)
	assert.Contains(t, d.View(), "esc to clear")

	d.PressEnter()
	p, ok := appstate.SelectedProject(d.State())
	require.True(t, ok)
	assert.Equal(t, "Website", p.Name)
}

func TestTUI_OpenProjectAndBack(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	p := seedProject(t, app, "Garden", 0)
	seedTask(t, app, p.ID, "Plant tulips", domain.PriorityHigh)
	d := NewTestDriver(t, app)

	d.PressDown()
	d.PressEnter()

	require.Equal(t, appstate.ViewDetail, d.State().View)
	view := d.View()
	assert.Contains(t, view, "Garden")
	assert.Contains(t, view, "TO DO (1)")
	assert.Contains(t, view, "Plant tulips")
	assert.Contains(t, view, "PROGRESS")

	d.PressEsc()
	assert.Equal(t, appstate.ViewDashboard, d.State().View)
	assert.Nil(t, d.State().Selected)

	d.PressUp()
	d.PressEnter()
	selected, ok := appstate.SelectedProject(d.State())
	require.True(t, ok)
	assert.Equal(t, "Website", selected.Name)
}

func openFirstProject(t *testing.T, d *TestDriver) {
	t.Helper()
	d.PressEnter()
	require.Equal(t, appstate.ViewDetail, d.State().View)
}

func TestTUI_MoveTaskAcrossColumns(t *testing.T) {
	app, _ := testApp(t)
	p := seedProject(t, app, "Website", 0)
	task := seedTask(t, app, p.ID, "Write copy", domain.PriorityHigh)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('l')
	got, ok := appstate.Task(d.State(), task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	assert.Equal(t, 1, d.appModel().col, "cursor follows the task")

	d.PressKey('l')
	got, _ = appstate.Task(d.State(), task.ID)
	assert.Equal(t, domain.TaskReview, got.Status)

	d.PressKey('h')
	got, _ = appstate.Task(d.State(), task.ID)
	assert.Equal(t, domain.TaskInProgress, got.Status)

	d.PressKey('c')
	got, _ = appstate.Task(d.State(), task.ID)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	assert.Contains(t, d.View(), "✔ 1 completed")
	assert.Empty(t, d.State().Banner)
}

func TestTUI_FailedMoveRevertsAndShowsBanner(t *testing.T) {
	app, srv := testApp(t)
	p := seedProject(t, app, "Website", 0)
	task := seedTask(t, app, p.ID, "Write copy", domain.PriorityHigh)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	srv.failTaskUpdates.Store(true)
	d.PressKey('l')

	got, _ := appstate.Task(d.State(), task.ID)
	assert.Equal(t, domain.TaskToDo, got.Status)
	assert.Equal(t, appstate.MoveFailedMessage, d.State().Banner)
	assert.Contains(t, d.View(), appstate.MoveFailedMessage)

	// The first esc dismisses the banner and stays on the board.
	d.PressEsc()
	assert.Empty(t, d.State().Banner)
	assert.Equal(t, appstate.ViewDetail, d.State().View)
}

func TestTUI_MoveAtEdgeIsNoop(t *testing.T) {
	app, _ := testApp(t)
	p := seedProject(t, app, "Website", 0)
	task := seedTask(t, app, p.ID, "Write copy", domain.PriorityHigh)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('h')

	got, _ := appstate.Task(d.State(), task.ID)
	assert.Equal(t, domain.TaskToDo, got.Status)
	assert.Zero(t, d.appModel().busy)
}

func TestTUI_CreateProjectWithForm(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	require.Equal(t, appstate.ModalProjectForm, d.State().Modal)
	assert.Contains(t, d.View(), "New project")

	d.SubmitProjectForm(func(v *projectFormValues) {
		v.name = "Garden"
		v.end = "2030-05-01"
	})

	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	require.Len(t, d.State().Projects, 1)
	assert.Equal(t, "Garden", d.State().Projects[0].Name)
	assert.Contains(t, d.View(), "Garden")
}

func TestTUI_ProjectFormKeepsInputOnError(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.SubmitProjectForm(func(v *projectFormValues) {
		v.name = "Garden"
		v.end = "soon"
	})

	assert.Equal(t, appstate.ModalProjectForm, d.State().Modal)
	assert.Contains(t, d.State().Banner, "invalid date")
	require.NotNil(t, d.appModel().project)
	assert.Equal(t, "Garden", d.appModel().project.name)

	d.SubmitProjectForm(func(v *projectFormValues) {
		v.name = ""
		v.end = ""
	})
	assert.Equal(t, appstate.ModalProjectForm, d.State().Modal)
	assert.Contains(t, d.State().Banner, "name")
	assert.Empty(t, d.State().Projects)

	d.PressEsc()
	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	assert.Nil(t, d.appModel().form)
}

func TestTUI_AddSubProjectFromDetail(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('s')
	require.Equal(t, appstate.ModalProjectForm, d.State().Modal)
	assert.Contains(t, d.View(), "New sub-project")

	d.SubmitProjectForm(func(v *projectFormValues) { v.name = "Blog" })

	sel, ok := appstate.SelectedProject(d.State())
	require.True(t, ok)
	require.Len(t, sel.ChildProjects, 1)
	assert.Equal(t, "Blog", sel.ChildProjects[0].Name)
	assert.Contains(t, d.View(), "SUB-PROJECTS")

	d.PressEsc()
	assert.Len(t, appstate.VisibleProjects(d.State()), 1)
}

func TestTUI_AddAndEditTask(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('a')
	require.Equal(t, appstate.ModalTaskForm, d.State().Modal)
	d.SubmitTaskForm(func(v *taskFormValues) {
		v.title = "Write copy"
		v.priority = domain.PriorityHigh
	})

	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	require.Len(t, d.State().Tasks, 1)
	assert.Contains(t, d.View(), "Write copy")

	d.PressKey('e')
	require.Equal(t, appstate.ModalTaskForm, d.State().Modal)
	assert.Contains(t, d.View(), "Edit task")
	d.SubmitTaskForm(func(v *taskFormValues) { v.title = "Write landing copy" })

	require.Len(t, d.State().Tasks, 1)
	assert.Equal(t, "Write landing copy", d.State().Tasks[0].Title)
}

func TestTUI_TaskHistoryModal(t *testing.T) {
	app, _ := testApp(t)
	p := seedProject(t, app, "Website", 0)
	seedTask(t, app, p.ID, "Write copy", domain.PriorityHigh)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('l')
	d.PressKey('H')

	require.Equal(t, appstate.ModalTaskHistory, d.State().Modal)
	view := d.View()
	assert.Contains(t, view, "TASK HISTORY · WRITE COPY")
	assert.Contains(t, view, "Status changed from TO_DO to IN_PROGRESS")

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "q closes the modal")
	assert.Equal(t, appstate.ModalNone, d.State().Modal)
}

func TestTUI_StrategyEditorAndHistory(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('p')
	require.Equal(t, appstate.ModalStrategyEditor, d.State().Modal)
	d.Type("Launch in May")
	d.PressCtrlS()

	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	assert.Equal(t, "Launch in May", d.State().Selected.StrategyPlan)
	assert.Contains(t, d.View(), "Launch in May")

	d.PressKey('S')
	require.Equal(t, appstate.ModalStrategyHistory, d.State().Modal)
	require.Len(t, d.State().StrategyHistory, 1)
	assert.Contains(t, d.View(), "(empty plan)")
	d.PressEsc()
	assert.Equal(t, appstate.ModalNone, d.State().Modal)
}

func TestTUI_MarkdownEditorCancel(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('m')
	require.Equal(t, appstate.ModalMarkdownEditor, d.State().Modal)
	d.Type("# Draft")
	d.PressEsc()

	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	assert.Empty(t, d.State().Selected.MarkdownPlan)
	assert.Equal(t, appstate.ViewDetail, d.State().View)
}

func TestTUI_ReadMarkdownPlan(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)
	require.NoError(t, app.Controller.SaveMarkdown(context.Background(), "# Launch\n\n- write copy\n- ship it\n"))

	d.PressKey('v')

	require.Equal(t, appstate.ModalMarkdownView, d.State().Modal)
	view := d.View()
	assert.Contains(t, view, "MARKDOWN PLAN · WEBSITE")
	assert.Contains(t, view, "• write copy")
	assert.NotContains(t, view, "- ship it")

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "q closes the reader")
	assert.Equal(t, appstate.ModalNone, d.State().Modal)
	assert.Equal(t, appstate.ViewDetail, d.State().View)
}

func TestTUI_ReadEmptyMarkdownPlan(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('v')

	assert.Contains(t, d.View(), "No markdown plan yet")
	d.PressEsc()
	assert.Equal(t, appstate.ModalNone, d.State().Modal)
}

func TestTUI_DeleteTaskNeedsConfirmation(t *testing.T) {
	app, _ := testApp(t)
	p := seedProject(t, app, "Website", 0)
	seedTask(t, app, p.ID, "Write copy", domain.PriorityHigh)
	d := NewTestDriver(t, app)
	openFirstProject(t, d)

	d.PressKey('x')
	assert.Contains(t, d.View(), "Delete task")
	d.PressKey('n')
	assert.Len(t, d.State().Tasks, 1)

	d.PressKey('x')
	d.PressKey('y')
	assert.Empty(t, d.State().Tasks)
	assert.Contains(t, d.View(), "TO DO (0)")
}

func TestTUI_DeleteProjectFromDashboard(t *testing.T) {
	app, _ := testApp(t)
	seedProject(t, app, "Website", 0)
	d := NewTestDriver(t, app)

	d.PressKey('x')
	assert.Contains(t, d.View(), "Sub-projects become top-level")
	d.PressKey('y')

	assert.Empty(t, d.State().Projects)
	assert.Contains(t, d.View(), "No projects found.")
}

func TestTUI_ParentNavigation(t *testing.T) {
	app, _ := testApp(t)
	parent := seedProject(t, app, "Website", 0)
	child := seedProject(t, app, "Blog", parent.ID)
	require.NoError(t, app.Controller.OpenProject(context.Background(), child.ID))

	d := NewTestDriver(t, app)
	require.Equal(t, appstate.ViewDetail, d.State().View)
	assert.Contains(t, d.View(), "in Website")

	d.PressKey('P')
	sel, ok := appstate.SelectedProject(d.State())
	require.True(t, ok)
	assert.Equal(t, parent.ID, sel.ID)
	assert.Contains(t, d.View(), "SUB-PROJECTS")
}
