// Package state persists constraint sets and solve history in SQLite.
package state

import (
	"context"
	"time"

	"github.com/depsolve-labs/depsolve/internal/constraint"
)

// SolveStatus is the recorded outcome of a solve run.
type SolveStatus string

const (
	SolveStatusSatisfiable   SolveStatus = "satisfiable"
	SolveStatusUnsatisfiable SolveStatus = "unsatisfiable"
)

// SolveRun is one recorded solve invocation.
type SolveRun struct {
	ID         string      `json:"id"`
	Status     SolveStatus `json:"status"`
	UnitCount  int         `json:"unit_count"`
	Source     string      `json:"source"` // "manifest" or "persisted"
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

// Store is the persisted constraint state.
type Store interface {
	// SaveSet replaces the persisted constraint set.
	SaveSet(ctx context.Context, set *constraint.Set) error
	// LoadSet returns the persisted constraint set. An empty store yields
	// an empty set.
	LoadSet(ctx context.Context) (*constraint.Set, error)
	// RecordSolve appends a solve run to the history.
	RecordSolve(ctx context.Context, run *SolveRun) error
	// ListSolves returns solve runs, newest first.
	ListSolves(ctx context.Context, limit int) ([]*SolveRun, error)
	Close() error
}
