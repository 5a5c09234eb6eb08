package app

import (
	"context"

	"github.com/alexanderramin/planner/internal/domain"
)

// ProjectAPI is the remote project resource.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	SaveProject(ctx context.Context, p domain.Project) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error)
	ListStrategyHistory(ctx context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error)
}

// TaskAPI is the remote task resource.
type TaskAPI interface {
	SaveTask(ctx context.Context, t domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListTaskHistory(ctx context.Context, taskID int64) ([]domain.TaskVersionHistory, error)
}

// API is everything the dashboard needs from the backend.
type API interface {
	ProjectAPI
	TaskAPI
}
