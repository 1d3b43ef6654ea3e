package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		avatar_ref TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL REFERENCES workers(id),
		worker_name TEXT NOT NULL,
		project_id TEXT NOT NULL,
		project_name TEXT NOT NULL,
		stage_id TEXT NOT NULL,
		stage_name TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		hours REAL NOT NULL DEFAULT 0,
		overtime INTEGER NOT NULL DEFAULT 0,
		date TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_worker_date
		ON work_sessions(worker_id, date)`,

	// Store-level backstop for the one-running-session-per-worker
	// invariant: at most one open row per worker can exist.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_running
		ON work_sessions(worker_id) WHERE ended_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS stage_assignments (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL REFERENCES workers(id),
		project_id TEXT NOT NULL,
		project_name TEXT NOT NULL,
		stage_id TEXT NOT NULL,
		stage_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'assigned'
			CHECK (status IN ('assigned', 'in_progress', 'done')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stage_assignments_worker_status
		ON stage_assignments(worker_id, status)`,
}

// Migrate runs all schema migrations in order.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
