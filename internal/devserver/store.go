// Package devserver is a local implementation of the dashboard's HTTP API,
// backed by SQLite. It exists so the client can be developed and tested
// without the upstream backend.
package devserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
)

// Store implements the API's persistence rules on top of the repositories.
// Writes that also record history run in a single transaction.
type Store struct {
	uow db.UnitOfWork

	projects        repository.ProjectRepo
	tasks           repository.TaskRepo
	taskHistory     repository.TaskHistoryRepo
	strategyHistory repository.StrategyHistoryRepo
}

// NewStore wires repositories over database. uow may be nil, in which case
// a SQLite unit of work over database is used.
func NewStore(database *sql.DB, uow db.UnitOfWork) *Store {
	if uow == nil {
		uow = db.NewSQLiteUnitOfWork(database)
	}
	return &Store{
		uow:             uow,
		projects:        repository.NewSQLiteProjectRepo(database),
		tasks:           repository.NewSQLiteTaskRepo(database),
		taskHistory:     repository.NewSQLiteTaskHistoryRepo(database),
		strategyHistory: repository.NewSQLiteStrategyHistoryRepo(database),
	}
}

// ListProjects returns every project with its direct children attached.
func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return withChildren(all), nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := domain.FindProject(withChildren(all), id)
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func withChildren(all []domain.Project) []domain.Project {
	children := make(map[int64][]domain.Project)
	for _, p := range all {
		if p.ParentProjectID != 0 {
			children[p.ParentProjectID] = append(children[p.ParentProjectID], p)
		}
	}
	out := make([]domain.Project, len(all))
	for i, p := range all {
		p.ChildProjects = children[p.ID]
		out[i] = p
	}
	return out
}

func (s *Store) checkParent(ctx context.Context, p *domain.Project) error {
	if p.ParentProjectID == 0 {
		return nil
	}
	if p.ParentProjectID == p.ID {
		return &domain.ValidationError{Field: "parentProject", Message: "a project cannot be its own parent"}
	}
	all, err := s.projects.List(ctx)
	if err != nil {
		return err
	}
	parentOf := make(map[int64]int64, len(all))
	for _, q := range all {
		parentOf[q.ID] = q.ParentProjectID
	}
	if _, ok := parentOf[p.ParentProjectID]; !ok {
		return &domain.ValidationError{Field: "parentProject", Message: fmt.Sprintf("project %d does not exist", p.ParentProjectID)}
	}
	if p.ID == 0 {
		return nil
	}
	// Walk up from the proposed parent; reaching p means p would become its
	// own ancestor.
	seen := make(map[int64]bool)
	for id := p.ParentProjectID; id != 0 && !seen[id]; id = parentOf[id] {
		if id == p.ID {
			return &domain.ValidationError{Field: "parentProject", Message: fmt.Sprintf("project %d is a descendant of this project", p.ParentProjectID)}
		}
		seen[id] = true
	}
	return nil
}

func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	if err := s.checkParent(ctx, p); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

// UpdateProject replaces a project. A changed strategy plan is snapshotted
// into the strategy history first.
func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	if err := s.checkParent(ctx, p); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		old, err := projects.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if old.StrategyPlan != p.StrategyPlan {
			err := repository.NewSQLiteStrategyHistoryRepo(tx).Append(ctx, &domain.ProjectStrategyVersion{
				ProjectID:       p.ID,
				OldStrategyPlan: old.StrategyPlan,
				ChangeSummary:   "Strategy plan updated",
			})
			if err != nil {
				return err
			}
		}
		p.CreatedAt = old.CreatedAt
		return projects.Update(ctx, p)
	})
}

// DeleteProject removes a project and its tasks. Child projects survive as
// top-level projects.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		if err := projects.DetachChildren(ctx, id); err != nil {
			return err
		}
		return projects.Delete(ctx, id)
	})
}

func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *Store) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Store) CreateTask(ctx context.Context, t *domain.Task) error {
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return &domain.ValidationError{Field: "project", Message: fmt.Sprintf("project %d does not exist", t.ProjectID)}
	}
	return s.tasks.Create(ctx, t)
}

// UpdateTask replaces a task, recording the previous title, description and
// status when any of them change.
func (s *Store) UpdateTask(ctx context.Context, t *domain.Task) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		old, err := tasks.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if t.ProjectID == 0 {
			t.ProjectID = old.ProjectID
		}
		if summary := changeSummary(old, t); summary != "" {
			err := repository.NewSQLiteTaskHistoryRepo(tx).Append(ctx, &domain.TaskVersionHistory{
				TaskID:         t.ID,
				OldTitle:       old.Title,
				OldDescription: old.Description,
				OldStatus:      string(old.Status),
				ChangeSummary:  summary,
			})
			if err != nil {
				return err
			}
		}
		t.CreatedAt = old.CreatedAt
		return tasks.Update(ctx, t)
	})
}

func changeSummary(old, updated *domain.Task) string {
	var parts []string
	if old.Title != updated.Title {
		parts = append(parts, fmt.Sprintf("Title changed from '%s' to '%s'", old.Title, updated.Title))
	}
	if old.Description != updated.Description {
		parts = append(parts, "Description updated")
	}
	if old.Status != updated.Status {
		parts = append(parts, fmt.Sprintf("Status changed from %s to %s", old.Status, updated.Status))
	}
	return strings.Join(parts, "; ")
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

func (s *Store) TaskHistory(ctx context.Context, taskID int64) ([]domain.TaskVersionHistory, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.taskHistory.ListByTask(ctx, taskID)
}

func (s *Store) StrategyHistory(ctx context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.strategyHistory.ListByProject(ctx, projectID)
}
