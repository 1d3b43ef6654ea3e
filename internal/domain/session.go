package domain

import "time"

// WorkSession is one clock-in/clock-out record for a worker on a
// production stage. EndedAt == nil means the session is still running;
// that field is the sole source of truth for "active". Worker, project
// and stage names are point-in-time display caches, not live joins:
// if the authoritative name changes later, historical sessions keep
// the name they were created with.
type WorkSession struct {
	ID          string
	WorkerID    string
	WorkerName  string
	ProjectID   string
	ProjectName string
	StageID     string
	StageName   string
	StartedAt   time.Time
	EndedAt     *time.Time
	Hours       float64 // payroll hours, set once at stop; 0 while running
	Overtime    bool    // frozen at clock-in, see IsOvertime
	Date        string  // YYYY-MM-DD of StartedAt, for day-level queries
	CreatedAt   time.Time
}

// Running reports whether the session is still open.
func (s *WorkSession) Running() bool {
	return s.EndedAt == nil
}

// Close stamps the end time and computes payroll hours. It must be
// called at most once; the repository enforces that with a guarded
// update on the open row.
func (s *WorkSession) Close(end time.Time) {
	e := end
	s.EndedAt = &e
	s.Hours = WorkHours(s.StartedAt, end)
}
