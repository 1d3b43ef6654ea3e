package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// StartSessionInput carries everything needed to clock a worker in.
// Names are denormalized display caches captured at clock-in.
type StartSessionInput struct {
	WorkerID    string
	WorkerName  string
	ProjectID   string
	ProjectName string
	StageID     string
	StageName   string
}

// SessionService owns the per-worker session state machine: at most
// one running session per worker, enforced transactionally.
type SessionService interface {
	// Start clocks the worker in on a stage. If the worker already has
	// a running session it is auto-stopped (with payroll hours
	// computed at the current clock) before the new one is created.
	Start(ctx context.Context, in StartSessionInput) (*domain.WorkSession, error)
	// Stop closes the session, computing payroll hours against the
	// current clock. Stopping an unknown or already-closed session
	// returns repository.ErrNotFound and never alters recorded hours.
	Stop(ctx context.Context, sessionID string) (*domain.WorkSession, error)
	// GetRunning returns the worker's open session, or nil when idle.
	GetRunning(ctx context.Context, workerID string) (*domain.WorkSession, error)
	// ListDay returns a worker's sessions for a YYYY-MM-DD day.
	ListDay(ctx context.Context, workerID, date string) ([]*domain.WorkSession, error)
}

// WorkerFailure records a worker omitted from a status board because
// one of its source queries failed.
type WorkerFailure struct {
	WorkerID string
	Err      error
}

// StatusBoard is a freshly computed view of every worker's current
// status. Failures lists workers omitted by partial-result tolerance;
// the board itself is still valid.
type StatusBoard struct {
	GeneratedAt time.Time
	Workers     []domain.WorkerStatus
	Failures    []WorkerFailure
}

// StatusService recomputes the live factory board on demand. Results
// are never cached across calls.
type StatusService interface {
	Snapshot(ctx context.Context) (*StatusBoard, error)
}
