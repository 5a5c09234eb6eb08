package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, title, description, due_date, priority, status, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	now := domain.Timestamp{Time: time.Now().UTC()}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (project_id, title, description, due_date, priority, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID,
		t.Title,
		t.Description,
		nullableDate(t.DueDate),
		string(t.Priority),
		string(t.Status),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = domain.Timestamp{Time: time.Now().UTC()}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET project_id = ?, title = ?, description = ?, due_date = ?, priority = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		t.ProjectID,
		t.Title,
		t.Description,
		nullableDate(t.DueDate),
		string(t.Priority),
		string(t.Status),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var priority, status, createdAt, updatedAt string
	var dueDate sql.NullString

	if err := s.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description,
		&dueDate, &priority, &status,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)

	var err error
	if t.DueDate, err = parseNullableDate(dueDate, "due_date"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}
