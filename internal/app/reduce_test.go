package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []domain.Project {
	return []domain.Project{
		{ID: 1, Name: "Website Redesign", Status: domain.ProjectActive,
			ChildProjects: []domain.Project{{ID: 3, Name: "Landing page", ParentProjectID: 1}}},
		{ID: 2, Name: "Mobile App", Status: domain.ProjectDraft},
		{ID: 3, Name: "Landing page", Status: domain.ProjectActive, ParentProjectID: 1},
	}
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 10, Title: "Low", Priority: domain.PriorityLow, Status: domain.TaskToDo, ProjectID: 1},
		{ID: 11, Title: "High", Priority: domain.PriorityHigh, Status: domain.TaskInProgress, ProjectID: 1},
		{ID: 12, Title: "Done", Priority: domain.PriorityMedium, Status: domain.TaskCompleted, ProjectID: 1},
	}
}

func detailState() State {
	s := Reduce(NewState(), ProjectsLoaded{Projects: sampleProjects()})
	s = Reduce(s, ProjectSelected{Project: sampleProjects()[0]})
	return Reduce(s, TasksLoaded{Tasks: sampleTasks()})
}

func TestReduce_ProjectsLoadedClearsLoading(t *testing.T) {
	s := Reduce(NewState(), ProjectsRequested{})
	require.True(t, s.LoadingProjects)

	s = Reduce(s, ProjectsLoaded{Projects: sampleProjects()})

	assert.False(t, s.LoadingProjects)
	assert.Len(t, s.Projects, 3)
}

func TestVisibleProjects_TopLevelAndSearch(t *testing.T) {
	s := Reduce(NewState(), ProjectsLoaded{Projects: sampleProjects()})

	names := func(ps []domain.Project) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Website Redesign", "Mobile App"}, names(VisibleProjects(s)))

	s = Reduce(s, SearchChanged{Term: "MOBILE"})
	assert.Equal(t, []string{"Mobile App"}, names(VisibleProjects(s)))

	s = Reduce(s, SearchChanged{Term: "landing"})
	assert.Empty(t, VisibleProjects(s), "child projects are not listed on the dashboard")
}

func TestReduce_SelectAndBack(t *testing.T) {
	s := detailState()

	assert.Equal(t, ViewDetail, s.View)
	p, ok := SelectedProject(s)
	require.True(t, ok)
	assert.Equal(t, int64(1), p.ID)
	assert.False(t, s.LoadingTasks)
	assert.Equal(t, []int64{11, 12, 10}, taskIDs(s.Tasks), "tasks are priority sorted")

	s = Reduce(s, BackToDashboard{})
	assert.Equal(t, ViewDashboard, s.View)
	_, ok = SelectedProject(s)
	assert.False(t, ok)
	assert.Empty(t, s.Tasks)
}

func TestReduce_LateTasksStillApplied(t *testing.T) {
	s := Reduce(detailState(), BackToDashboard{})

	s = Reduce(s, TasksLoaded{Tasks: sampleTasks()})

	assert.Len(t, s.Tasks, 3)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := detailState()
	snapshot, err := json.Marshal(before)
	require.NoError(t, err)

	_ = Reduce(before, TaskStatusSet{TaskID: 10, Status: domain.TaskReview})
	_ = Reduce(before, ProjectRefreshed{Project: domain.Project{ID: 1, Name: "Renamed"}})
	_ = Reduce(before, ProjectRemoved{ID: 2})
	_ = Reduce(before, ModalOpened{Modal: ModalTaskForm, TaskDraft: &domain.Task{Title: "x"}})

	after, err := json.Marshal(before)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestReduce_ProjectRefreshedReplacesSelectionAndList(t *testing.T) {
	s := detailState()
	updated := sampleProjects()[0]
	updated.StrategyPlan = "ship it"

	s = Reduce(s, ProjectRefreshed{Project: updated})

	assert.Equal(t, "ship it", s.Selected.StrategyPlan)
	p, _ := domain.FindProject(s.Projects, 1)
	assert.Equal(t, "ship it", p.StrategyPlan)
}

func TestReduce_ProjectRemovedLeavesDetail(t *testing.T) {
	s := Reduce(detailState(), ProjectRemoved{ID: 1})

	assert.Equal(t, ViewDashboard, s.View)
	_, found := domain.FindProject(s.Projects, 1)
	assert.False(t, found)
}

func TestReduce_Modals(t *testing.T) {
	s := detailState()
	draft := &domain.Task{Title: "New", ProjectID: 1}

	s = Reduce(s, ModalOpened{Modal: ModalTaskForm, TaskDraft: draft})
	require.Equal(t, ModalTaskForm, s.Modal)
	require.NotNil(t, s.TaskDraft)
	draft.Title = "mutated by caller"
	assert.Equal(t, "New", s.TaskDraft.Title)

	s = Reduce(s, ModalOpened{Modal: ModalTaskHistory, HistoryTaskID: 10})
	assert.Nil(t, s.TaskDraft, "opening another modal discards the draft")
	s = Reduce(s, TaskHistoryLoaded{Entries: []domain.TaskVersionHistory{{ID: 1, TaskID: 10}}})
	assert.Len(t, s.TaskHistory, 1)

	s = Reduce(s, ModalClosed{})
	assert.Equal(t, ModalNone, s.Modal)
	assert.Zero(t, s.HistoryTaskID)
	assert.Nil(t, s.TaskHistory)
}

func TestReduce_ErrorBanner(t *testing.T) {
	s := Reduce(NewState(), ProjectsRequested{})

	s = Reduce(s, ErrorRaised{Message: "Failed to load projects."})
	assert.Equal(t, "Failed to load projects.", s.Banner)
	assert.False(t, s.LoadingProjects)

	s = Reduce(s, ErrorCleared{})
	assert.Empty(t, s.Banner)
}

func TestStats_UsesSelectedEndDate(t *testing.T) {
	s := detailState()
	sel := *s.Selected
	sel.EndDate = domain.NewDate(2026, 3, 20)
	s = Reduce(s, ProjectRefreshed{Project: sel})

	st := Stats(s, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 3, st.TotalTasks)
	assert.Equal(t, 33, st.Progress)
	require.NotNil(t, st.DaysRemaining)
	assert.Equal(t, "10 days remaining", st.DaysRemaining.String())
}

func TestBoard_GroupsByStatus(t *testing.T) {
	b := Board(detailState())

	assert.Len(t, b[domain.TaskToDo], 1)
	assert.Len(t, b[domain.TaskInProgress], 1)
	assert.Empty(t, b[domain.TaskReview])
	assert.Len(t, b[domain.TaskCompleted], 1)
}

func taskIDs(tasks []domain.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
