package stats

import (
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func task(status domain.TaskStatus, due domain.Date) domain.Task {
	return domain.Task{Title: "t", Status: status, Priority: domain.PriorityMedium, DueDate: due}
}

func TestCompute_ProgressAndCounts(t *testing.T) {
	s := Compute([]domain.Task{
		task(domain.TaskCompleted, domain.Date{}),
		task(domain.TaskToDo, domain.Date{}),
	}, domain.Date{}, now)

	assert.Equal(t, 2, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 50, s.Progress)
	assert.InDelta(t, 0.5, s.ProgressRatio(), 1e-9)
	assert.Nil(t, s.DaysRemaining)
	assert.Empty(t, s.DaysRemainingLabel())
}

func TestCompute_NoTasks(t *testing.T) {
	s := Compute(nil, domain.Date{}, now)

	assert.Equal(t, 0, s.TotalTasks)
	assert.Equal(t, 0, s.Progress)
	assert.Equal(t, 0, s.OverdueTasks)
}

func TestCompute_ProgressRounds(t *testing.T) {
	tasks := []domain.Task{
		task(domain.TaskCompleted, domain.Date{}),
		task(domain.TaskCompleted, domain.Date{}),
		task(domain.TaskReview, domain.Date{}),
	}

	assert.Equal(t, 67, Compute(tasks, domain.Date{}, now).Progress)
	assert.Equal(t, 50, Compute(tasks[1:], domain.Date{}, now).Progress)
	assert.Equal(t, 100, Compute(tasks[:2], domain.Date{}, now).Progress)
}

func TestCompute_OverdueSkipsCompletedAndFuture(t *testing.T) {
	yesterday := domain.NewDate(2026, 3, 9)
	tomorrow := domain.NewDate(2026, 3, 11)
	s := Compute([]domain.Task{
		task(domain.TaskToDo, yesterday),
		task(domain.TaskInProgress, yesterday),
		task(domain.TaskCompleted, yesterday),
		task(domain.TaskReview, tomorrow),
		task(domain.TaskToDo, domain.Date{}),
	}, domain.Date{}, now)

	assert.Equal(t, 2, s.OverdueTasks)
}

func TestIsOverdue_DueTodayAfterMidnight(t *testing.T) {
	today := domain.NewDate(2026, 3, 10)

	assert.True(t, IsOverdue(task(domain.TaskToDo, today), now))
	assert.False(t, IsOverdue(task(domain.TaskToDo, today), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestCompute_DaysRemaining(t *testing.T) {
	tests := []struct {
		name    string
		end     domain.Date
		want    int
		label   string
		pastDue bool
	}{
		{"today", domain.NewDate(2026, 3, 10), 0, "0 days remaining", false},
		{"tomorrow", domain.NewDate(2026, 3, 11), 1, "1 days remaining", false},
		{"next month", domain.NewDate(2026, 4, 10), 31, "31 days remaining", false},
		{"yesterday", domain.NewDate(2026, 3, 9), -1, "Past Due", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(nil, tt.end, now)
			require.NotNil(t, s.DaysRemaining)
			assert.Equal(t, DaysRemaining(tt.want), *s.DaysRemaining)
			assert.Equal(t, tt.pastDue, s.DaysRemaining.PastDue())
			assert.Equal(t, tt.label, s.DaysRemainingLabel())
		})
	}
}

func TestCompute_DaysRemainingUsesCallerLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2026-03-10 20:00 UTC is already the 11th in Tokyo.
	late := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC).In(tokyo)

	s := Compute(nil, domain.NewDate(2026, 3, 11), late)

	require.NotNil(t, s.DaysRemaining)
	assert.Equal(t, DaysRemaining(0), *s.DaysRemaining)
}
