package app

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTask_FailureRevertsAndRaisesBanner(t *testing.T) {
	s := detailState()
	move, moved, ok := MoveTask(s, 10, domain.TaskReview)
	require.True(t, ok)
	assert.Equal(t, domain.TaskReview, moved.Status)

	s = move.Begin(s)
	task, _ := Task(s, 10)
	assert.Equal(t, domain.TaskReview, task.Status, "applied before the server answers")

	s = move.Settle(s, errors.New("boom"))
	task, _ = Task(s, 10)
	assert.Equal(t, domain.TaskToDo, task.Status)
	assert.Equal(t, MoveFailedMessage, s.Banner)
}

func TestMoveTask_SuccessKeepsChange(t *testing.T) {
	s := detailState()
	move, _, ok := MoveTask(s, 11, domain.TaskCompleted)
	require.True(t, ok)

	s = move.Settle(move.Begin(s), nil)

	task, _ := Task(s, 11)
	assert.Equal(t, domain.TaskCompleted, task.Status)
	assert.Empty(t, s.Banner)
}

func TestMoveTask_OvertakenFailureKeepsLaterMove(t *testing.T) {
	s := detailState()
	first, _, ok := MoveTask(s, 10, domain.TaskInProgress)
	require.True(t, ok)
	s = first.Begin(s)
	second, _, ok := MoveTask(s, 10, domain.TaskReview)
	require.True(t, ok)
	s = second.Begin(s)

	s = first.Settle(s, errors.New("boom"))
	task, _ := Task(s, 10)
	assert.Equal(t, domain.TaskReview, task.Status, "the later move is not undone")
	assert.Equal(t, MoveFailedMessage, s.Banner)

	s = second.Settle(s, errors.New("boom"))
	task, _ = Task(s, 10)
	assert.Equal(t, domain.TaskInProgress, task.Status)
}

func TestMoveTask_SameStatusOrUnknownIsNoop(t *testing.T) {
	s := detailState()

	_, _, ok := MoveTask(s, 10, domain.TaskToDo)
	assert.False(t, ok)
	_, _, ok = MoveTask(s, 999, domain.TaskReview)
	assert.False(t, ok)
}

func TestResync_Outcomes(t *testing.T) {
	refetched := []domain.Task{{ID: 1, Title: "fresh", Priority: domain.PriorityLow, Status: domain.TaskToDo}}
	mutateErr := errors.New("mutate")
	refetchErr := errors.New("refetch")

	tests := []struct {
		name       string
		mutate     error
		refetch    error
		wantBanner string
		wantTasks  int
		wantErr    error
	}{
		{"success", nil, nil, "", 1, nil},
		{"mutation fails", mutateErr, nil, "Failed to save task.", 0, mutateErr},
		{"refetch fails", nil, refetchErr, "Failed to load tasks.", 0, refetchErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refetch := func(context.Context) ([]domain.Task, error) { return refetched, tt.refetch }
			r := Resync[[]domain.Task]{
				Mutate:                func(context.Context) error { return tt.mutate },
				Refetch:               refetch,
				Loaded:                func(ts []domain.Task) Action { return TasksLoaded{Tasks: ts} },
				FailureMessage:        "Failed to save task.",
				RefetchFailureMessage: "Failed to load tasks.",
			}

			a, err := r.Run(context.Background())
			s := Reduce(NewState(), a)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantBanner, s.Banner)
			assert.Len(t, s.Tasks, tt.wantTasks)
		})
	}
}

func TestStore_DispatchAndUpdate(t *testing.T) {
	store := NewStore(NewState())

	store.Dispatch(ProjectsLoaded{Projects: sampleProjects()}, ProjectSelected{Project: sampleProjects()[1]})
	require.Equal(t, ViewDetail, store.State().View)

	store.Update(func(s State) State { return Reduce(s, ErrorRaised{Message: "x"}) })
	assert.Equal(t, "x", store.State().Banner)
}
