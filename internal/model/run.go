package model

import "time"

// RunStatus is the persisted lifecycle state of a qualification run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one persisted qualification run: the conference URL it targeted and
// the scored results once the pipeline finished.
type Run struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Status    RunStatus     `json:"status"`
	Results   []ScoreResult `json:"results,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
