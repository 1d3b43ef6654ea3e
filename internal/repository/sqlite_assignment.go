package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo over SQLite.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(dbtx db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: dbtx}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.StageAssignment) error {
	query := `INSERT INTO stage_assignments
		(id, worker_id, project_id, project_name, stage_id, stage_name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.WorkerID,
		a.ProjectID,
		a.ProjectName,
		a.StageID,
		a.StageName,
		string(a.Status),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting stage assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ListByWorker(ctx context.Context, workerID string) ([]*domain.StageAssignment, error) {
	query := `SELECT id, worker_id, project_id, project_name, stage_id, stage_name, status, created_at, updated_at
		FROM stage_assignments WHERE worker_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by worker: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.StageAssignment
	for rows.Next() {
		var a domain.StageAssignment
		var status, createdAtStr, updatedAtStr string
		if err := rows.Scan(&a.ID, &a.WorkerID, &a.ProjectID, &a.ProjectName,
			&a.StageID, &a.StageName, &status, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		a.Status = domain.StageStatus(status)
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

// UpdateStatusByStage is a no-op when the worker holds no assignment
// on the stage; sessions may be logged against unassigned work.
func (r *SQLiteAssignmentRepo) UpdateStatusByStage(ctx context.Context, workerID, stageID string, status domain.StageStatus) error {
	query := `UPDATE stage_assignments SET status = ?, updated_at = ?
		WHERE worker_id = ? AND stage_id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(status), time.Now().UTC().Format(time.RFC3339), workerID, stageID)
	if err != nil {
		return fmt.Errorf("updating assignment status: %w", err)
	}
	return nil
}
