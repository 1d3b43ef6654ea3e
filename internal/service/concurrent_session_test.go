package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two concurrent starts for the same worker must leave exactly one
// running session: one caller wins, the other either auto-stops the
// winner's predecessor or fails on the store's running-session guard.
func TestConcurrentStart_ExactlyOneRunningSurvives(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.addWorker(t, "Mara")

	const callers = 2
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.sessions.Start(ctx, env.startInput(w))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	require.GreaterOrEqual(t, successes, 1, "at least one start must win")

	var open int
	row := env.db.QueryRow(
		`SELECT COUNT(*) FROM work_sessions WHERE worker_id = ? AND ended_at IS NULL`, w.ID)
	require.NoError(t, row.Scan(&open))
	assert.Equal(t, 1, open, "exactly one running session may survive")
}
