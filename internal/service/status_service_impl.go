package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

type statusService struct {
	workers     repository.WorkerRepo
	assignments repository.AssignmentRepo
	sessions    SessionService
	clock       Clock
	logger      *slog.Logger
}

func NewStatusService(
	workers repository.WorkerRepo,
	assignments repository.AssignmentRepo,
	sessions SessionService,
	clock Clock,
	logger *slog.Logger,
) StatusService {
	if logger == nil {
		logger = slog.Default()
	}
	return &statusService{
		workers:     workers,
		assignments: assignments,
		sessions:    sessions,
		clock:       clock,
		logger:      logger,
	}
}

// Snapshot recomputes the whole board from current store state. A
// failure for one worker omits that worker and records it on the
// board instead of failing the aggregation: a board showing 9 of 10
// workers beats showing none.
func (s *statusService) Snapshot(ctx context.Context) (*StatusBoard, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, wrapStoreErr("listing workers", err)
	}

	now := s.clock.Now()
	board := &StatusBoard{GeneratedAt: now}

	for _, w := range workers {
		status, err := s.workerStatus(ctx, w, now)
		if err != nil {
			s.logger.ErrorContext(ctx, "status aggregation failed for worker",
				"worker_id", w.ID, "worker_name", w.Name, "error", err)
			board.Failures = append(board.Failures, WorkerFailure{WorkerID: w.ID, Err: err})
			continue
		}
		board.Workers = append(board.Workers, status)
	}
	return board, nil
}

func (s *statusService) workerStatus(ctx context.Context, w *domain.Worker, now time.Time) (domain.WorkerStatus, error) {
	status := domain.WorkerStatus{
		WorkerID:   w.ID,
		WorkerName: w.Name,
		Role:       w.Role,
		AvatarRef:  w.AvatarRef,
		State:      domain.WorkerIdle,
	}

	running, err := s.sessions.GetRunning(ctx, w.ID)
	if err != nil {
		return status, fmt.Errorf("running session: %w", err)
	}
	if running != nil {
		status.State = domain.WorkerWorking
		status.CurrentTask = &domain.CurrentTask{
			ProjectName: running.ProjectName,
			StageName:   running.StageName,
			StartedAt:   running.StartedAt,
			Elapsed:     domain.FormatElapsed(running.StartedAt, now),
		}
	}

	assignments, err := s.assignments.ListByWorker(ctx, w.ID)
	if err != nil {
		return status, fmt.Errorf("assignments: %w", err)
	}
	for _, a := range assignments {
		if a.Status == domain.StageAssigned {
			status.NewTaskCount++
		}
	}
	return status, nil
}
