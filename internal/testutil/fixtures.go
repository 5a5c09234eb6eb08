package testutil

import (
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithEndDate(d domain.Date) ProjectOption {
	return func(p *domain.Project) {
		p.EndDate = d
	}
}

func WithParent(id int64) ProjectOption {
	return func(p *domain.Project) {
		p.ParentProjectID = id
	}
}

func WithStrategy(plan string) ProjectOption {
	return func(p *domain.Project) {
		p.StrategyPlan = plan
	}
}

// NewTestProject returns an unsaved ACTIVE project that started today.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:        name,
		Description: name + " description",
		StartDate:   domain.DateOf(time.Now().UTC()),
		Status:      domain.ProjectActive,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d domain.Date) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = d
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

// NewTestTask returns an unsaved MEDIUM, TO_DO task due in a week.
func NewTestTask(projectID int64, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		Title:     title,
		DueDate:   domain.DateOf(time.Now().UTC().AddDate(0, 0, 7)),
		Priority:  domain.PriorityMedium,
		Status:    domain.TaskToDo,
		ProjectID: projectID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
