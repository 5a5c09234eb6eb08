package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

type SQLiteTaskHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteTaskHistoryRepo(conn db.DBTX) *SQLiteTaskHistoryRepo {
	return &SQLiteTaskHistoryRepo{db: conn}
}

func (r *SQLiteTaskHistoryRepo) Append(ctx context.Context, h *domain.TaskVersionHistory) error {
	if h.VersionTimestamp.IsZero() {
		h.VersionTimestamp = domain.Timestamp{Time: time.Now().UTC()}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO task_history (task_id, version_timestamp, old_title, old_description, old_status, change_summary)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.TaskID, formatTimestamp(h.VersionTimestamp), h.OldTitle, h.OldDescription, h.OldStatus, h.ChangeSummary,
	)
	if err != nil {
		return fmt.Errorf("inserting task history: %w", err)
	}
	if h.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading task history id: %w", err)
	}
	return nil
}

func (r *SQLiteTaskHistoryRepo) ListByTask(ctx context.Context, taskID int64) ([]domain.TaskVersionHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, version_timestamp, old_title, old_description, old_status, change_summary
		FROM task_history WHERE task_id = ? ORDER BY version_timestamp DESC, id DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing task history: %w", err)
	}
	defer rows.Close()

	entries := []domain.TaskVersionHistory{}
	for rows.Next() {
		var h domain.TaskVersionHistory
		var ts string
		if err := rows.Scan(&h.ID, &h.TaskID, &ts, &h.OldTitle, &h.OldDescription, &h.OldStatus, &h.ChangeSummary); err != nil {
			return nil, fmt.Errorf("scanning task history row: %w", err)
		}
		if h.VersionTimestamp, err = parseTimestamp(ts, "version_timestamp"); err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task history: %w", err)
	}
	return entries, nil
}

type SQLiteStrategyHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteStrategyHistoryRepo(conn db.DBTX) *SQLiteStrategyHistoryRepo {
	return &SQLiteStrategyHistoryRepo{db: conn}
}

func (r *SQLiteStrategyHistoryRepo) Append(ctx context.Context, v *domain.ProjectStrategyVersion) error {
	if v.VersionTimestamp.IsZero() {
		v.VersionTimestamp = domain.Timestamp{Time: time.Now().UTC()}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO strategy_history (project_id, version_timestamp, old_goal, old_strategy_plan, change_summary)
		VALUES (?, ?, ?, ?, ?)`,
		v.ProjectID, formatTimestamp(v.VersionTimestamp), v.OldGoal, v.OldStrategyPlan, v.ChangeSummary,
	)
	if err != nil {
		return fmt.Errorf("inserting strategy history: %w", err)
	}
	if v.VersionID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading strategy history id: %w", err)
	}
	return nil
}

func (r *SQLiteStrategyHistoryRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT version_id, project_id, version_timestamp, old_goal, old_strategy_plan, change_summary
		FROM strategy_history WHERE project_id = ? ORDER BY version_timestamp DESC, version_id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing strategy history: %w", err)
	}
	defer rows.Close()

	versions := []domain.ProjectStrategyVersion{}
	for rows.Next() {
		var v domain.ProjectStrategyVersion
		var ts string
		if err := rows.Scan(&v.VersionID, &v.ProjectID, &ts, &v.OldGoal, &v.OldStrategyPlan, &v.ChangeSummary); err != nil {
			return nil, fmt.Errorf("scanning strategy history row: %w", err)
		}
		if v.VersionTimestamp, err = parseTimestamp(ts, "version_timestamp"); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating strategy history: %w", err)
	}
	return versions, nil
}
