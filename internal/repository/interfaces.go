package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SessionRepo is the durable store for work sessions.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	// GetRunning returns the single open session for a worker, or
	// ErrNotFound if the worker is idle.
	GetRunning(ctx context.Context, workerID string) (*domain.WorkSession, error)
	// Close stamps end time and payroll hours on an open session.
	// Returns ErrNotFound if the session does not exist or was already
	// closed, so a retried stop can never overwrite recorded hours.
	Close(ctx context.Context, id string, endedAt time.Time, hours float64) error
	ListByWorkerDay(ctx context.Context, workerID, date string) ([]*domain.WorkSession, error)
}

// WorkerRepo is the factory roster.
type WorkerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
}

// AssignmentRepo backs the per-worker task list the status board
// joins against.
type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.StageAssignment) error
	ListByWorker(ctx context.Context, workerID string) ([]*domain.StageAssignment, error)
	// UpdateStatusByStage moves a worker's assignment on the given
	// stage to the new status. A missing assignment is a no-op:
	// sessions may be logged against unassigned stages.
	UpdateStatusByStage(ctx context.Context, workerID, stageID string, status domain.StageStatus) error
}
