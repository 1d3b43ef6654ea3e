package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/require"
)

// workday is the reference clock-in instant used across service tests.
var workday = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	db          *sql.DB
	clock       *testutil.FakeClock
	sessions    SessionService
	status      StatusService
	sessionRepo *repository.SQLiteSessionRepo
	workerRepo  *repository.SQLiteWorkerRepo
	assignRepo  *repository.SQLiteAssignmentRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewFakeClock(workday)

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	assignRepo := repository.NewSQLiteAssignmentRepo(database)

	sessions := NewSessionService(sessionRepo, testutil.NewTestUoW(database), clock)
	status := NewStatusService(workerRepo, assignRepo, sessions, clock, discardLogger())

	return &testEnv{
		db:          database,
		clock:       clock,
		sessions:    sessions,
		status:      status,
		sessionRepo: sessionRepo,
		workerRepo:  workerRepo,
		assignRepo:  assignRepo,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *testEnv) addWorker(t *testing.T, name string, opts ...testutil.WorkerOption) *domain.Worker {
	t.Helper()
	w := testutil.NewTestWorker(name, opts...)
	require.NoError(t, e.workerRepo.Create(context.Background(), w))
	return w
}

func (e *testEnv) startInput(w *domain.Worker) StartSessionInput {
	return StartSessionInput{
		WorkerID:    w.ID,
		WorkerName:  w.Name,
		ProjectID:   "p1",
		ProjectName: "Hull 14",
		StageID:     "weld-01",
		StageName:   "welding",
	}
}
