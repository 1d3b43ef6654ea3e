package testutil

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/google/uuid"
)

// WorkerOption customizes a test worker.
type WorkerOption func(*domain.Worker)

func WithRole(role string) WorkerOption {
	return func(w *domain.Worker) { w.Role = role }
}

func WithAvatarRef(ref string) WorkerOption {
	return func(w *domain.Worker) { w.AvatarRef = ref }
}

// NewTestWorker creates a worker with sensible defaults.
func NewTestWorker(name string, opts ...WorkerOption) *domain.Worker {
	w := &domain.Worker{
		ID:        uuid.New().String(),
		Name:      name,
		Role:      "operator",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AssignmentOption customizes a test stage assignment.
type AssignmentOption func(*domain.StageAssignment)

func WithStageStatus(status domain.StageStatus) AssignmentOption {
	return func(a *domain.StageAssignment) { a.Status = status }
}

func WithStage(stageID, stageName string) AssignmentOption {
	return func(a *domain.StageAssignment) {
		a.StageID = stageID
		a.StageName = stageName
	}
}

func WithProject(projectID, projectName string) AssignmentOption {
	return func(a *domain.StageAssignment) {
		a.ProjectID = projectID
		a.ProjectName = projectName
	}
}

// NewTestAssignment creates an assignment in "assigned" status for the
// given worker.
func NewTestAssignment(workerID string, opts ...AssignmentOption) *domain.StageAssignment {
	now := time.Now().UTC()
	a := &domain.StageAssignment{
		ID:          uuid.New().String(),
		WorkerID:    workerID,
		ProjectID:   uuid.New().String(),
		ProjectName: "Hull 14",
		StageID:     uuid.New().String(),
		StageName:   "welding",
		Status:      domain.StageAssigned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
