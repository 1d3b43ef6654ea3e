package domain

import "time"

// StageAssignment links a worker to a production stage of a project.
// Assignments are owned by the planning side of the system; the status
// board only reads them, except for the assigned -> in_progress
// transition made when a session starts against the stage.
type StageAssignment struct {
	ID          string
	WorkerID    string
	ProjectID   string
	ProjectName string
	StageID     string
	StageName   string
	Status      StageStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
