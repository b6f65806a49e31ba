package models

import "time"

// Approval run statuses.
const (
	RunRunning = "running"
	RunOK      = "ok"
	RunPartial = "partial"
	RunFailed  = "failed"
)

// ApprovalRun is one recorded attempt to approve a generated plan.
type ApprovalRun struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Total      int            `json:"total"`
	Succeeded  int            `json:"succeeded"`
	Error      string         `json:"error,omitempty"`
	Steps      []ApprovalStep `json:"steps,omitempty"`
}

// ApprovalStep is the last step reached for one task of a run.
type ApprovalStep struct {
	Position   int       `json:"position"`
	Task       string    `json:"task"`
	Step       string    `json:"step"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Status summarises how the run ended.
func (r ApprovalRun) Status() string {
	switch {
	case r.FinishedAt == nil:
		return RunRunning
	case r.Error == "":
		return RunOK
	case r.Succeeded > 0:
		return RunPartial
	default:
		return RunFailed
	}
}
