package domain

import "time"

// Worker is one entry in the factory roster.
type Worker struct {
	ID        string
	Name      string
	Role      string
	AvatarRef string
	CreatedAt time.Time
}

// DisplayID returns a short identifier for table output.
func (w *Worker) DisplayID() string {
	if len(w.ID) >= 8 {
		return w.ID[:8]
	}
	return w.ID
}
