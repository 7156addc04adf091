package store

import (
	"context"
	"time"

	"github.com/civic-tools/district-cli/internal/model"
)

// RunFilter specifies criteria for listing batch runs.
type RunFilter struct {
	Status       model.RunStatus `json:"status,omitempty"`
	File         string          `json:"file,omitempty"`
	CreatedAfter time.Time       `json:"created_after,omitempty"`
	Limit        int             `json:"limit,omitempty"`
	Offset       int             `json:"offset,omitempty"`
}

// CacheStats summarizes the lookup cache contents.
type CacheStats struct {
	Total   int `json:"total"`
	Expired int `json:"expired"`
}

// Store defines the persistence interface for batch runs and cached
// representative lookups.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, file string, pending int) (*model.BatchRun, error)
	FinishRun(ctx context.Context, runID string, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.BatchRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.BatchRun, error)

	// Lookup cache
	GetCachedLookup(ctx context.Context, address string) ([]byte, error)
	SetCachedLookup(ctx context.Context, address string, data []byte, ttl time.Duration) error
	DeleteExpiredLookups(ctx context.Context) (int, error)
	CountLookups(ctx context.Context) (*CacheStats, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// statusFor derives the terminal run status from its result.
func statusFor(result *model.RunResult) model.RunStatus {
	switch {
	case result.Error != "":
		return model.RunStatusFailed
	case result.Interrupted:
		return model.RunStatusInterrupted
	default:
		return model.RunStatusComplete
	}
}
