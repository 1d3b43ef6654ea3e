package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_CreatesRunningSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	sess, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.Running())
	assert.Equal(t, "2026-03-10", sess.Date)
	assert.False(t, sess.Overtime, "08:00 clock-in is not overtime")

	running, err := env.sessions.GetRunning(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, sess.ID, running.ID)
}

func TestStart_RequiresWorkerAndStage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sessions.Start(ctx, StartSessionInput{StageID: "weld-01"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = env.sessions.Start(ctx, StartSessionInput{WorkerID: "w1"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStart_AutoStopsPreviousSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	first, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)

	env.clock.Advance(2 * time.Hour)
	in := env.startInput(w)
	in.StageID = "paint-01"
	in.StageName = "painting"
	second, err := env.sessions.Start(ctx, in)
	require.NoError(t, err)

	// The old session was closed as if stopped at the new start time.
	closed, err := env.sessionRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, closed.Running())
	assert.InDelta(t, 2.0, closed.Hours, 1e-9)

	running, err := env.sessions.GetRunning(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, second.ID, running.ID)
}

func TestStart_MarksAssignmentInProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	a := testutil.NewTestAssignment(w.ID, testutil.WithStage("weld-01", "welding"))
	require.NoError(t, env.assignRepo.Create(ctx, a))

	_, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)

	assignments, err := env.assignRepo.ListByWorker(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, domain.StageInProgress, assignments[0].Status)
}

func TestStop_ComputesLunchAdjustedHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	sess, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)

	env.clock.Set(workday.Add(9 * time.Hour)) // 17:00
	stopped, err := env.sessions.Stop(ctx, sess.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, stopped.Hours, 1e-9, "9 raw hours minus 1.5 lunch")
	require.NotNil(t, stopped.EndedAt)

	running, err := env.sessions.GetRunning(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, running)
}

func TestStop_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	sess, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)

	env.clock.Advance(90 * time.Minute)
	stopped, err := env.sessions.Stop(ctx, sess.ID)
	require.NoError(t, err)

	// Retrying with the same id reports NotFound and leaves the
	// recorded hours untouched.
	env.clock.Advance(5 * time.Hour)
	_, err = env.sessions.Stop(ctx, sess.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := env.sessionRepo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.InDelta(t, stopped.Hours, got.Hours, 1e-9)
}

func TestStop_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sessions.Stop(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStart_OvertimeFrozenAtClockIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	env.clock.Set(time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC))
	sess, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)
	assert.True(t, sess.Overtime)

	// Stopping well inside regular hours does not clear the flag.
	env.clock.Set(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	_, err = env.sessions.Stop(ctx, sess.ID)
	require.NoError(t, err)

	got, err := env.sessionRepo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, got.Overtime)
}

func TestGetRunning_NilWhenIdle(t *testing.T) {
	env := newTestEnv(t)
	w := env.addWorker(t, "Mara")

	running, err := env.sessions.GetRunning(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Nil(t, running)
}

func TestListDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	sess, err := env.sessions.Start(ctx, env.startInput(w))
	require.NoError(t, err)
	env.clock.Advance(time.Hour)
	_, err = env.sessions.Stop(ctx, sess.ID)
	require.NoError(t, err)

	sessions, err := env.sessions.ListDay(ctx, w.ID, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	sessions, err = env.sessions.ListDay(ctx, w.ID, "2026-03-11")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
