package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func setupController(t *testing.T) (*Controller, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	api.addProject(domain.Project{ID: 1, Name: "Website", Status: domain.ProjectActive, StrategyPlan: "v1"})
	api.addProject(domain.Project{ID: 2, Name: "Mobile", Status: domain.ProjectDraft})
	api.addTask(domain.Task{ID: 10, Title: "Wireframes", Priority: domain.PriorityLow, Status: domain.TaskToDo, ProjectID: 1})
	api.addTask(domain.Task{ID: 11, Title: "Copy", Priority: domain.PriorityHigh, Status: domain.TaskInProgress, ProjectID: 1})
	c := NewController(api, nil, WithClock(func() time.Time { return fixedNow }))
	return c, api
}

func openWebsite(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.LoadProjects(ctx))
	require.NoError(t, c.OpenProject(ctx, 1))
}

func TestController_LoadProjects(t *testing.T) {
	c, api := setupController(t)

	require.NoError(t, c.LoadProjects(context.Background()))
	assert.Len(t, c.State().Projects, 2)
	assert.False(t, c.State().LoadingProjects)

	api.failOn["ListProjects"] = true
	err := c.LoadProjects(context.Background())
	require.ErrorIs(t, err, errServer)
	assert.Equal(t, MsgLoadProjectsFailed, c.State().Banner)
	assert.Len(t, c.State().Projects, 2, "previous list is kept")
}

func TestController_Drafts(t *testing.T) {
	c, _ := setupController(t)

	p := c.NewProjectDraft(7)
	assert.Equal(t, domain.NewDate(2026, 5, 4), p.StartDate)
	assert.Equal(t, domain.ProjectDraft, p.Status)
	assert.Equal(t, int64(7), p.ParentProjectID)

	task := c.NewTaskDraft(1)
	assert.Equal(t, domain.NewDate(2026, 5, 4), task.DueDate)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.TaskToDo, task.Status)
}

func TestController_OpenProjectSortsTasks(t *testing.T) {
	c, _ := setupController(t)
	openWebsite(t, c)

	s := c.State()
	assert.Equal(t, app.ViewDetail, s.View)
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, int64(11), s.Tasks[0].ID, "HIGH first")
}

func TestController_OpenProjectFetchesUnlisted(t *testing.T) {
	c, api := setupController(t)

	require.NoError(t, c.OpenProject(context.Background(), 2))
	assert.Equal(t, 1, api.count("GetProject"))

	err := c.OpenProject(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, MsgLoadProjectFailed, c.State().Banner)
}

func TestController_OpenProjectTaskFailure(t *testing.T) {
	c, api := setupController(t)
	require.NoError(t, c.LoadProjects(context.Background()))
	api.failOn["ListProjectTasks"] = true

	err := c.OpenProject(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, MsgLoadTasksFailed, c.State().Banner)
	assert.False(t, c.State().LoadingTasks)
}

func TestController_SaveProjectResyncs(t *testing.T) {
	c, api := setupController(t)
	require.NoError(t, c.LoadProjects(context.Background()))
	draft := c.NewProjectDraft(0)
	draft.Name = "Research"
	c.Dispatch(app.ModalOpened{Modal: app.ModalProjectForm, ProjectDraft: &draft})

	saved, err := c.SaveProject(context.Background(), draft)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Len(t, c.State().Projects, 3)
	assert.Equal(t, app.ModalNone, c.State().Modal)
	assert.Equal(t, 2, api.count("ListProjects"))
}

func TestController_SaveProjectFailures(t *testing.T) {
	c, api := setupController(t)
	require.NoError(t, c.LoadProjects(context.Background()))

	_, err := c.SaveProject(context.Background(), domain.Project{Status: domain.ProjectDraft})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "name: is required", c.State().Banner)
	assert.Zero(t, api.count("SaveProject"))

	api.failOn["SaveProject"] = true
	_, err = c.SaveProject(context.Background(), domain.Project{Name: "X", Status: domain.ProjectDraft})
	require.ErrorIs(t, err, errServer)
	assert.Equal(t, MsgSaveProjectFailed, c.State().Banner)
	assert.Equal(t, 1, api.count("ListProjects"), "no re-fetch after a failed save")
}

func TestController_SubProjectRefreshesSelection(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	api.projects[1] = domain.Project{ID: 1, Name: "Website", Status: domain.ProjectActive,
		ChildProjects: []domain.Project{{ID: 5, Name: "Blog", ParentProjectID: 1}}}

	draft := c.NewProjectDraft(1)
	draft.Name = "Blog"
	_, err := c.SaveProject(context.Background(), draft)

	require.NoError(t, err)
	sel, ok := app.SelectedProject(c.State())
	require.True(t, ok)
	assert.True(t, sel.HasChildren())
}

func TestController_DeleteProject(t *testing.T) {
	c, api := setupController(t)
	require.NoError(t, c.LoadProjects(context.Background()))

	require.NoError(t, c.DeleteProject(context.Background(), 2))
	assert.Len(t, c.State().Projects, 1)

	api.failOn["DeleteProject"] = true
	err := c.DeleteProject(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, MsgDeleteProjectFailed, c.State().Banner)
	assert.Len(t, c.State().Projects, 1)
}

func TestController_SaveStrategyUnchangedIsNoop(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	c.Dispatch(app.ModalOpened{Modal: app.ModalStrategyEditor})

	require.NoError(t, c.SaveStrategy(context.Background(), "v1"))

	assert.Zero(t, api.count("SaveProject"))
	assert.Equal(t, app.ModalNone, c.State().Modal)
}

func TestController_SaveStrategyRefreshesProject(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)

	require.NoError(t, c.SaveStrategy(context.Background(), "v2"))

	assert.Equal(t, 1, api.count("GetProject"))
	assert.Equal(t, "v2", c.State().Selected.StrategyPlan)
}

func TestController_SaveMarkdownFailure(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	api.failOn["SaveProject"] = true

	err := c.SaveMarkdown(context.Background(), "# Plan")

	require.Error(t, err)
	assert.Equal(t, MsgSaveDetailsFailed, c.State().Banner)
	assert.Empty(t, c.State().Selected.MarkdownPlan)
}

func TestController_SaveStrategyRequiresSelection(t *testing.T) {
	c, _ := setupController(t)

	err := c.SaveStrategy(context.Background(), "x")

	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestController_SaveAndDeleteTask(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	draft := c.NewTaskDraft(0)
	draft.Title = "Launch checklist"

	saved, err := c.SaveTask(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ProjectID, "attached to the open project")
	assert.Len(t, c.State().Tasks, 3)

	require.NoError(t, c.DeleteTask(context.Background(), saved.ID))
	assert.Len(t, c.State().Tasks, 2)

	api.failOn["DeleteTask"] = true
	require.Error(t, c.DeleteTask(context.Background(), 10))
	assert.Equal(t, MsgDeleteTaskFailed, c.State().Banner)
}

func TestController_SaveTaskFailure(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	api.failOn["SaveTask"] = true

	_, err := c.SaveTask(context.Background(), domain.Task{Title: "x", Priority: domain.PriorityLow, Status: domain.TaskToDo})

	require.Error(t, err)
	assert.Equal(t, MsgSaveTaskFailed, c.State().Banner)
}

func TestController_MoveTaskFailureReverts(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	api.failOn["SaveTask"] = true

	err := c.MoveTask(context.Background(), 10, domain.TaskReview)

	require.ErrorIs(t, err, errServer)
	task, _ := app.Task(c.State(), 10)
	assert.Equal(t, domain.TaskToDo, task.Status)
	assert.Equal(t, app.MoveFailedMessage, c.State().Banner)
}

func TestController_MoveTaskAppliesBeforeServer(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)

	move, err := c.BeginMove(10, domain.TaskReview)
	require.NoError(t, err)
	require.NotNil(t, move)
	task, _ := app.Task(c.State(), 10)
	assert.Equal(t, domain.TaskReview, task.Status)
	assert.Zero(t, api.count("SaveTask"))

	require.NoError(t, move.Finish(context.Background()))
	assert.Equal(t, domain.TaskReview, api.tasks[10].Status)
}

func TestController_OverlappingMovesKeepSecond(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)

	first, err := c.BeginMove(10, domain.TaskInProgress)
	require.NoError(t, err)
	second, err := c.BeginMove(10, domain.TaskReview)
	require.NoError(t, err)

	require.NoError(t, second.Finish(context.Background()))
	api.failOn["SaveTask"] = true
	require.ErrorIs(t, first.Finish(context.Background()), errServer)

	task, _ := app.Task(c.State(), 10)
	assert.Equal(t, domain.TaskReview, task.Status)
	assert.Equal(t, domain.TaskReview, api.tasks[10].Status)
	assert.Equal(t, app.MoveFailedMessage, c.State().Banner)
}

func TestController_MoveTaskEdgeCases(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)

	require.NoError(t, c.MoveTask(context.Background(), 10, domain.TaskToDo))
	assert.Zero(t, api.count("SaveTask"), "same status is a no-op")

	assert.ErrorIs(t, c.MoveTask(context.Background(), 999, domain.TaskReview), domain.ErrNotFound)
	assert.ErrorIs(t, c.MoveTask(context.Background(), 10, "DONE"), domain.ErrInvalidInput)

	require.NoError(t, c.CompleteTask(context.Background(), 11))
	task, _ := app.Task(c.State(), 11)
	assert.True(t, task.IsCompleted())
}

func TestController_Histories(t *testing.T) {
	c, api := setupController(t)
	openWebsite(t, c)
	api.taskHist[10] = []domain.TaskVersionHistory{{ID: 1, TaskID: 10, OldStatus: "TO_DO"}}
	api.stratHist[1] = []domain.ProjectStrategyVersion{{VersionID: 1, ProjectID: 1, OldStrategyPlan: "v0"}}

	entries, err := c.LoadTaskHistory(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, app.ModalTaskHistory, c.State().Modal)
	assert.Equal(t, int64(10), c.State().HistoryTaskID)

	versions, err := c.LoadStrategyHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, versions, 1)
	assert.Equal(t, app.ModalStrategyHistory, c.State().Modal)

	api.failOn["ListTaskHistory"] = true
	_, err = c.LoadTaskHistory(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, MsgLoadHistoryFailed, c.State().Banner)
}

func TestController_ObserverSeesFailures(t *testing.T) {
	api := newFakeAPI()
	api.failOn["ListProjects"] = true
	var buf bytes.Buffer
	c := NewController(api, nil, WithObserver(NewLogUseCaseObserver(&buf)))

	err := c.LoadProjects(context.Background())

	require.True(t, errors.Is(err, errServer))
	assert.Contains(t, buf.String(), "use_case_failed")
	assert.Contains(t, buf.String(), "use_case=load-projects")
}
