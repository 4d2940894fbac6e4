// Package history persists build records so successive site builds can be
// compared and inspected after the fact.
package history

import (
	"context"
	"time"
)

// Record summarizes one completed site build.
type Record struct {
	BuildID    string
	StartedAt  time.Time
	Duration   time.Duration
	Outcome    string // success|warning|failed
	RouteCount int
	FailedN    int
	WarningN   int
	Report     []byte // full build report, JSON encoded
}

// Store defines the interface for persisting and retrieving build records.
type Store interface {
	// Save persists one build record.
	Save(ctx context.Context, rec Record) error

	// GetByBuildID retrieves a single build record.
	GetByBuildID(ctx context.Context, buildID string) (Record, error)

	// ListRecent retrieves the most recent build records, newest first.
	ListRecent(ctx context.Context, limit int) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
