package model

import (
	"time"
)

// RunStatus represents the current state of a batch enrichment run.
type RunStatus string

const (
	RunStatusRunning     RunStatus = "running"
	RunStatusComplete    RunStatus = "complete"
	RunStatusInterrupted RunStatus = "interrupted"
	RunStatusFailed      RunStatus = "failed"
)

// BatchRun records one invocation of the batch driver over a table file.
// Pending is the number of rows awaiting enrichment when the run started,
// so even a run that never finished reports the workload it faced.
type BatchRun struct {
	ID        string     `json:"id"`
	File      string     `json:"file"`
	Pending   int        `json:"pending"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a batch run.
type RunResult struct {
	Pending     int    `json:"pending"`
	Processed   int    `json:"processed"`
	Remaining   int    `json:"remaining"`
	CacheHits   int    `json:"cache_hits"`
	Interrupted bool   `json:"interrupted"`
	DurationMS  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}
