package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) SessionService {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Start(ctx context.Context, in StartSessionInput) (*domain.WorkSession, error) {
	started := s.clock.Now()
	sess, err := s.start(ctx, in)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "session.start",
		StartedAt: started,
		Duration:  s.clock.Now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"worker_id": in.WorkerID, "stage_id": in.StageID},
	})
	return sess, err
}

func (s *sessionService) start(ctx context.Context, in StartSessionInput) (*domain.WorkSession, error) {
	if in.WorkerID == "" {
		return nil, fmt.Errorf("worker id is required: %w", ErrInvalidArgument)
	}
	if in.StageID == "" {
		return nil, fmt.Errorf("stage id is required: %w", ErrInvalidArgument)
	}

	now := s.clock.Now()
	sess := &domain.WorkSession{
		ID:          uuid.New().String(),
		WorkerID:    in.WorkerID,
		WorkerName:  in.WorkerName,
		ProjectID:   in.ProjectID,
		ProjectName: in.ProjectName,
		StageID:     in.StageID,
		StageName:   in.StageName,
		StartedAt:   now,
		Overtime:    domain.IsOvertime(now),
		Date:        now.Format("2006-01-02"),
		CreatedAt:   now,
	}

	// The running-session check, the auto-stop and the insert commit
	// or roll back as one; two concurrent starts for the same worker
	// cannot both observe an idle worker.
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		running, err := txSessions.GetRunning(ctx, in.WorkerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if running != nil {
			hours := domain.WorkHours(running.StartedAt, now)
			if err := txSessions.Close(ctx, running.ID, now, hours); err != nil {
				return err
			}
		}

		if err := txSessions.Create(ctx, sess); err != nil {
			return err
		}

		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		return txAssignments.UpdateStatusByStage(ctx, in.WorkerID, in.StageID, domain.StageInProgress)
	})
	if err != nil {
		return nil, wrapStoreErr("starting session", err)
	}
	return sess, nil
}

func (s *sessionService) Stop(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	started := s.clock.Now()
	sess, err := s.stop(ctx, sessionID)
	fields := map[string]any{"session_id": sessionID}
	if sess != nil {
		fields["hours"] = sess.Hours
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "session.stop",
		StartedAt: started,
		Duration:  s.clock.Now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
	return sess, err
}

func (s *sessionService) stop(ctx context.Context, sessionID string) (*domain.WorkSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required: %w", ErrInvalidArgument)
	}

	now := s.clock.Now()
	var stopped *domain.WorkSession

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		sess, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if !sess.Running() {
			return fmt.Errorf("work session %s already ended: %w", sessionID, repository.ErrNotFound)
		}

		hours := domain.WorkHours(sess.StartedAt, now)
		if err := txSessions.Close(ctx, sess.ID, now, hours); err != nil {
			return err
		}

		end := now
		sess.EndedAt = &end
		sess.Hours = hours
		stopped = sess
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("stopping session", err)
	}
	return stopped, nil
}

func (s *sessionService) GetRunning(ctx context.Context, workerID string) (*domain.WorkSession, error) {
	sess, err := s.sessions.GetRunning(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, wrapStoreErr("looking up running session", err)
	}
	return sess, nil
}

func (s *sessionService) ListDay(ctx context.Context, workerID, date string) ([]*domain.WorkSession, error) {
	sessions, err := s.sessions.ListByWorkerDay(ctx, workerID, date)
	if err != nil {
		return nil, wrapStoreErr("listing day sessions", err)
	}
	return sessions, nil
}
