package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

const sessionColumns = `id, worker_id, worker_name, project_id, project_name,
	stage_id, stage_name, started_at, ended_at, hours, overtime, date, created_at`

// SQLiteSessionRepo implements SessionRepo over SQLite. It accepts a
// db.DBTX so it can run against the pool or inside a transaction.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(dbtx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: dbtx}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.WorkerID,
		s.WorkerName,
		s.ProjectID,
		s.ProjectName,
		s.StageID,
		s.StageName,
		s.StartedAt.Format(time.RFC3339),
		nullableTimeToString(s.EndedAt),
		s.Hours,
		boolToInt(s.Overtime),
		s.Date,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) GetRunning(ctx context.Context, workerID string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE worker_id = ? AND ended_at IS NULL`
	row := r.db.QueryRowContext(ctx, query, workerID)
	return r.scanSession(row)
}

// Close updates only the open row, guarding against double stops: a
// session that is already closed matches nothing and reports ErrNotFound.
func (r *SQLiteSessionRepo) Close(ctx context.Context, id string, endedAt time.Time, hours float64) error {
	query := `UPDATE work_sessions SET ended_at = ?, hours = ?
		WHERE id = ? AND ended_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, endedAt.Format(time.RFC3339), hours, id)
	if err != nil {
		return fmt.Errorf("closing work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing work session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work session %s is not running: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListByWorkerDay(ctx context.Context, workerID, date string) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE worker_id = ? AND date = ? ORDER BY started_at`
	rows, err := r.db.QueryContext(ctx, query, workerID, date)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by worker day: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startedAtStr, createdAtStr string
	var endedAtStr sql.NullString
	var overtime int

	err := row.Scan(
		&s.ID, &s.WorkerID, &s.WorkerName, &s.ProjectID, &s.ProjectName,
		&s.StageID, &s.StageName, &startedAtStr, &endedAtStr, &s.Hours,
		&overtime, &s.Date, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	return r.populateSession(&s, startedAtStr, createdAtStr, endedAtStr, overtime)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var startedAtStr, createdAtStr string
		var endedAtStr sql.NullString
		var overtime int

		err := rows.Scan(
			&s.ID, &s.WorkerID, &s.WorkerName, &s.ProjectID, &s.ProjectName,
			&s.StageID, &s.StageName, &startedAtStr, &endedAtStr, &s.Hours,
			&overtime, &s.Date, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning work session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, startedAtStr, createdAtStr, endedAtStr, overtime)
		if parseErr != nil {
			return nil, parseErr
		}

		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills parsed fields after scanning raw column values.
func (r *SQLiteSessionRepo) populateSession(s *domain.WorkSession, startedAtStr, createdAtStr string, endedAtStr sql.NullString, overtime int) (*domain.WorkSession, error) {
	var parseErr error
	s.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.EndedAt = parseNullableTime(endedAtStr)
	s.Overtime = intToBool(overtime)
	return s, nil
}
