package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo. ChildProjects is never
// populated here; callers assemble the hierarchy from List.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, description, start_date, end_date, status,
	strategy_plan, markdown_plan, parent_project_id, created_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = domain.Timestamp{Time: time.Now().UTC()}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description, start_date, end_date, status,
			strategy_plan, markdown_plan, parent_project_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Description,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		string(p.Status),
		p.StrategyPlan,
		p.MarkdownPlan,
		nullableID(p.ParentProjectID),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// Update overwrites every client-editable column. CreatedAt is preserved.
func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?,
			strategy_plan = ?, markdown_plan = ?, parent_project_id = ?
		WHERE id = ?`,
		p.Name,
		p.Description,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		string(p.Status),
		p.StrategyPlan,
		p.MarkdownPlan,
		nullableID(p.ParentProjectID),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

func (r *SQLiteProjectRepo) DetachChildren(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE projects SET parent_project_id = NULL WHERE parent_project_id = ?`, id); err != nil {
		return fmt.Errorf("detaching children of project %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var status, createdAt string
	var startDate, endDate sql.NullString
	var parentID sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.Name, &p.Description,
		&startDate, &endDate, &status,
		&p.StrategyPlan, &p.MarkdownPlan,
		&parentID, &createdAt,
	); err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(status)
	p.ParentProjectID = parentID.Int64

	var err error
	if p.StartDate, err = parseNullableDate(startDate, "start_date"); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseNullableDate(endDate, "end_date"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
