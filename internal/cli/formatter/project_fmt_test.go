package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := stats.Project{Progress: 50, TotalTasks: 2, CompletedTasks: 1}
	rows := []ProjectRow{
		{Project: domain.Project{ID: 1, Name: "Website", Status: domain.ProjectActive, EndDate: domain.NewDate(2026, 3, 12),
			ChildProjects: []domain.Project{{ID: 2, Name: "Blog"}}}, Stats: &st},
		{Project: domain.Project{ID: 3, Name: "Mobile", Status: domain.ProjectDraft}},
	}

	out := FormatProjectList(rows, now)
	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "In 2d")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Draft")

	assert.Contains(t, FormatProjectList(nil, now), "No projects found.")
}

func TestFormatProjectDetail(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	remaining := stats.DaysRemaining(-3)
	data := ProjectDetailData{
		Project: domain.Project{
			ID:           1,
			Name:         "Website",
			Status:       domain.ProjectActive,
			StartDate:    domain.NewDate(2026, 1, 1),
			EndDate:      domain.NewDate(2026, 3, 7),
			StrategyPlan: "Launch in phases",
			ChildProjects: []domain.Project{
				{ID: 4, Name: "Blog", Status: domain.ProjectCompleted},
			},
		},
		Parent: &domain.Project{ID: 9, Name: "Company"},
		Stats:  stats.Project{Progress: 25, TotalTasks: 4, CompletedTasks: 1, OverdueTasks: 2, DaysRemaining: &remaining},
		Now:    now,
	}

	out := FormatProjectDetail(data)
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "sub-project of")
	assert.Contains(t, out, "Company")
	assert.Contains(t, out, "Past Due")
	assert.Contains(t, out, "1/4 done")
	assert.Contains(t, out, "Blog")
	assert.Contains(t, out, "Launch in phases")
}

func TestFormatStatsGrid_NoEndDate(t *testing.T) {
	out := FormatStatsGrid(stats.Project{})
	assert.Contains(t, out, "No end date")
	assert.Contains(t, out, "0/0 done")
}

func TestRenderTree(t *testing.T) {
	items := ProjectTree([]domain.Project{
		{ID: 1, Name: "Website", Status: domain.ProjectActive, ChildProjects: []domain.Project{
			{ID: 2, Name: "Blog", EndDate: domain.NewDate(2026, 5, 1)},
			{ID: 3, Name: "Docs"},
		}},
	})
	out := RenderTree(items)
	assert.Contains(t, out, "├─ #2 Blog")
	assert.Contains(t, out, "└─ #3 Docs")
	assert.Contains(t, out, "[ 2026-05-01 ]")
}
