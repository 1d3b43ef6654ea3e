package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(workerID string, start time.Time) *domain.WorkSession {
	return &domain.WorkSession{
		ID:          uuid.New().String(),
		WorkerID:    workerID,
		WorkerName:  "Mara",
		ProjectID:   "p1",
		ProjectName: "Hull 14",
		StageID:     "s1",
		StageName:   "welding",
		StartedAt:   start,
		Overtime:    domain.IsOvertime(start),
		Date:        start.Format("2006-01-02"),
		CreatedAt:   start,
	}
}

func createWorker(t *testing.T, repo *SQLiteWorkerRepo) *domain.Worker {
	t.Helper()
	w := testutil.NewTestWorker("Mara")
	require.NoError(t, repo.Create(context.Background(), w))
	return w
}

func TestSessionRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	w := createWorker(t, NewSQLiteWorkerRepo(database))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)
	s := newSession(w.ID, start)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, w.ID, got.WorkerID)
	assert.Equal(t, "Hull 14", got.ProjectName)
	assert.True(t, got.Running())
	assert.True(t, got.Overtime)
	assert.Equal(t, "2026-03-10", got.Date)
	assert.True(t, got.StartedAt.Equal(start))
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_GetRunning(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	w := createWorker(t, NewSQLiteWorkerRepo(database))
	ctx := context.Background()

	_, err := repo.GetRunning(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	s := newSession(w.ID, start)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetRunning(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// A closed session no longer counts as running.
	require.NoError(t, repo.Close(ctx, s.ID, start.Add(time.Hour), 1.0))
	_, err = repo.GetRunning(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Close_GuardsDoubleStop(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	w := createWorker(t, NewSQLiteWorkerRepo(database))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	s := newSession(w.ID, start)
	require.NoError(t, repo.Create(ctx, s))

	end := start.Add(3 * time.Hour)
	require.NoError(t, repo.Close(ctx, s.ID, end, 3.0))

	// Second close must not touch the recorded hours.
	err := repo.Close(ctx, s.ID, end.Add(5*time.Hour), 99.0)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Hours, 1e-9)
	assert.True(t, got.EndedAt.Equal(end))
}

func TestSessionRepo_UniqueRunningIndex(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	w := createWorker(t, NewSQLiteWorkerRepo(database))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newSession(w.ID, start)))

	// The store itself rejects a second open session for the worker.
	err := repo.Create(ctx, newSession(w.ID, start.Add(time.Minute)))
	assert.Error(t, err)
}

func TestSessionRepo_ListByWorkerDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	workerRepo := NewSQLiteWorkerRepo(database)
	w := createWorker(t, workerRepo)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	first := newSession(w.ID, day1)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Close(ctx, first.ID, day1.Add(2*time.Hour), 2.0))

	second := newSession(w.ID, day1.Add(3*time.Hour))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Close(ctx, second.ID, day1.Add(4*time.Hour), 1.0))

	other := newSession(w.ID, day2)
	require.NoError(t, repo.Create(ctx, other))

	sessions, err := repo.ListByWorkerDay(ctx, w.ID, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
}
