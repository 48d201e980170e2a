// Package dao defines the persistence interface for run history, along with
// the errors its implementations return.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wespiper/ufr-ds/internal/induce"
)

// Run is a persisted summary of one induction engine invocation.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time

	// Tokens is the input the run was computed over, kept so a run can be
	// re-displayed or re-processed with different config later.
	Tokens []string

	Config induce.EngineConfig
	Result induce.Result
}

// Store is the persistence interface for run history. Implementations must
// be safe for concurrent use.
type Store interface {
	Runs() RunRepository

	// Close releases any resources held by the store (DB handles, open
	// files). It aggregates and returns all errors encountered closing the
	// store's sub-repositories.
	Close() error
}

// RunRepository stores and retrieves Run records.
type RunRepository interface {
	// Create persists r, assigning CreatedAt if it is the zero time. It
	// returns ErrConstraintViolation wrapped in a serr.Error if a run with
	// the same ID already exists.
	Create(ctx context.Context, r Run) (Run, error)

	// Get fetches the run with the given ID, returning ErrNotFound wrapped
	// in a serr.Error if no such run exists.
	Get(ctx context.Context, id uuid.UUID) (Run, error)

	// Close releases any resources held by the repository.
	Close() error
}
