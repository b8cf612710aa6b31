package recorder

import "time"

// RunEvent is one agent invocation.
type RunEvent struct {
	ID         string    `json:"id"`
	Agent      string    `json:"agent"`
	Status     string    `json:"status"` // "idle" or "error"
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	Summary    string    `json:"summary"`
}

// Recorder persists the agent run history for later inspection.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecentRuns(agent string, limit int) ([]RunEvent, error)
	Close() error
}
