package domain

type StageStatus string

const (
	StageAssigned   StageStatus = "assigned"
	StageInProgress StageStatus = "in_progress"
	StageDone       StageStatus = "done"
)

type WorkerState string

const (
	WorkerWorking WorkerState = "working"
	WorkerIdle    WorkerState = "idle"
)

// ValidStageStatuses is the canonical set of accepted assignment status strings.
var ValidStageStatuses = map[string]bool{
	"assigned": true, "in_progress": true, "done": true,
}
