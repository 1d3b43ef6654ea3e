package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteWorkerRepo implements WorkerRepo over SQLite.
type SQLiteWorkerRepo struct {
	db db.DBTX
}

func NewSQLiteWorkerRepo(dbtx db.DBTX) *SQLiteWorkerRepo {
	return &SQLiteWorkerRepo{db: dbtx}
}

func (r *SQLiteWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (id, name, role, avatar_ref, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.Name, w.Role, w.AvatarRef, w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting worker: %w", err)
	}
	return nil
}

func (r *SQLiteWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	query := `SELECT id, name, role, avatar_ref, created_at FROM workers WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var w domain.Worker
	var createdAtStr string
	if err := row.Scan(&w.ID, &w.Name, &w.Role, &w.AvatarRef, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worker: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning worker: %w", err)
	}
	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &w, nil
}

func (r *SQLiteWorkerRepo) List(ctx context.Context) ([]*domain.Worker, error) {
	query := `SELECT id, name, role, avatar_ref, created_at FROM workers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []*domain.Worker
	for rows.Next() {
		var w domain.Worker
		var createdAtStr string
		if err := rows.Scan(&w.ID, &w.Name, &w.Role, &w.AvatarRef, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning worker row: %w", err)
		}
		w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		workers = append(workers, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workers: %w", err)
	}
	return workers, nil
}
