package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		start_date        TEXT,
		end_date          TEXT,
		status            TEXT NOT NULL DEFAULT 'DRAFT'
		                  CHECK(status IN ('DRAFT','ACTIVE','COMPLETED','ABANDONED')),
		strategy_plan     TEXT NOT NULL DEFAULT '',
		markdown_plan     TEXT NOT NULL DEFAULT '',
		parent_project_id INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_parent ON projects(parent_project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date    TEXT,
		priority    TEXT NOT NULL DEFAULT 'MEDIUM'
		            CHECK(priority IN ('LOW','MEDIUM','HIGH')),
		status      TEXT NOT NULL DEFAULT 'TO_DO'
		            CHECK(status IN ('TO_DO','IN_PROGRESS','REVIEW','COMPLETED')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS task_history (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id           INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		version_timestamp TEXT NOT NULL,
		old_title         TEXT NOT NULL DEFAULT '',
		old_description   TEXT NOT NULL DEFAULT '',
		old_status        TEXT NOT NULL DEFAULT '',
		change_summary    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_history_task ON task_history(task_id)`,

	`CREATE TABLE IF NOT EXISTS strategy_history (
		version_id        INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id        INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		version_timestamp TEXT NOT NULL,
		old_goal          TEXT NOT NULL DEFAULT '',
		old_strategy_plan TEXT NOT NULL DEFAULT '',
		change_summary    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_strategy_history_project ON strategy_history(project_id)`,
}
