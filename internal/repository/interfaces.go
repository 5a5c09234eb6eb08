package repository

import (
	"context"

	"github.com/alexanderramin/planner/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// DetachChildren clears the parent of every direct child of id.
	DetachChildren(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskHistoryRepo stores task snapshots, listed newest first.
type TaskHistoryRepo interface {
	Append(ctx context.Context, h *domain.TaskVersionHistory) error
	ListByTask(ctx context.Context, taskID int64) ([]domain.TaskVersionHistory, error)
}

// StrategyHistoryRepo stores strategy plan snapshots, listed newest first.
type StrategyHistoryRepo interface {
	Append(ctx context.Context, v *domain.ProjectStrategyVersion) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error)
}
