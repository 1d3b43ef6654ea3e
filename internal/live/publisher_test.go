package live

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStatus serves a settable board and counts snapshot calls.
type stubStatus struct {
	mu    sync.Mutex
	board []domain.WorkerStatus
	err   error
	calls int
}

func (s *stubStatus) set(board []domain.WorkerStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.err = nil
}

func (s *stubStatus) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubStatus) snapshotCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubStatus) Snapshot(ctx context.Context) (*service.StatusBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &service.StatusBoard{GeneratedAt: time.Now(), Workers: s.board}, nil
}

func boardOf(names ...string) []domain.WorkerStatus {
	board := make([]domain.WorkerStatus, 0, len(names))
	for _, n := range names {
		board = append(board, domain.WorkerStatus{WorkerID: n, WorkerName: n, State: domain.WorkerIdle})
	}
	return board
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receive(t *testing.T, sub *Subscription) []domain.WorkerStatus {
	t.Helper()
	select {
	case board, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return board
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a board")
		return nil
	}
}

func TestSubscribe_DeliversInitialBoard(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, time.Hour, testLogger())

	sub := p.Subscribe()
	defer sub.Cancel()

	board := receive(t, sub)
	require.Len(t, board, 1)
	assert.Equal(t, "mara", board[0].WorkerID)
}

func TestNotify_BroadcastsToAllSubscribers(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, time.Hour, testLogger())

	first := p.Subscribe()
	defer first.Cancel()
	second := p.Subscribe()
	defer second.Cancel()
	receive(t, first)
	receive(t, second)

	stub.set(boardOf("mara", "andres"))
	p.Notify(context.Background())

	assert.Len(t, receive(t, first), 2)
	assert.Len(t, receive(t, second), 2)
}

func TestNotify_LatestWins(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, time.Hour, testLogger())

	sub := p.Subscribe()
	defer sub.Cancel()
	receive(t, sub)

	// Two broadcasts before the subscriber reads: only the newest
	// board is delivered.
	stub.set(boardOf("stale"))
	p.Notify(context.Background())
	stub.set(boardOf("fresh", "fresher"))
	p.Notify(context.Background())

	board := receive(t, sub)
	require.Len(t, board, 2)
	assert.Equal(t, "fresh", board[0].WorkerID)
}

func TestCancel_StopsDeliveryAndIsIdempotent(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, time.Hour, testLogger())

	sub := p.Subscribe()
	receive(t, sub)

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	_, ok := <-sub.C
	assert.False(t, ok, "channel must be closed after cancel")

	// Broadcasting with no subscribers must not panic.
	p.Notify(context.Background())
}

func TestPoll_RecomputesWithoutNotify(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, 10*time.Millisecond, testLogger())

	sub := p.Subscribe()
	defer sub.Cancel()
	receive(t, sub)

	deadline := time.Now().Add(2 * time.Second)
	for stub.snapshotCalls() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, stub.snapshotCalls(), 3, "poll loop must keep recomputing")
}

func TestNotify_RecomputeFailureIsNotFatal(t *testing.T) {
	stub := &stubStatus{}
	stub.set(boardOf("mara"))
	p := NewPublisher(stub, time.Hour, testLogger())

	sub := p.Subscribe()
	defer sub.Cancel()
	receive(t, sub)

	stub.fail(errors.New("task source down"))
	p.Notify(context.Background()) // logged, skipped

	stub.set(boardOf("mara", "andres"))
	p.Notify(context.Background())
	assert.Len(t, receive(t, sub), 2, "publisher must recover after a failed cycle")
}
