package domain

import "time"

// CurrentTask describes what a working worker is doing right now.
type CurrentTask struct {
	ProjectName string
	StageName   string
	StartedAt   time.Time
	Elapsed     string // wall-clock display string, not payroll hours
}

// WorkerStatus is one worker's row on the live factory board. Status
// snapshots are recomputed from scratch on every refresh and never
// patched in place.
type WorkerStatus struct {
	WorkerID     string
	WorkerName   string
	Role         string
	AvatarRef    string
	State        WorkerState
	CurrentTask  *CurrentTask // nil unless State == WorkerWorking
	NewTaskCount int          // assignments still in "assigned" status
}
