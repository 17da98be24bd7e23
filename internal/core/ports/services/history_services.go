package services

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
)

// HistorySvcFacade manages one linear undo/redo session per owner over
// whole-ledger snapshots. Undo/Redo on empty stacks are no-ops, not errors.
type HistorySvcFacade interface {
	// Push records a new present snapshot for the owner. Pushing a snapshot
	// value-equal to the present is a no-op.
	Push(ctx context.Context, ownerID string, snap domain.Snapshot) error

	// Current returns the present snapshot and the undo/redo availability flags.
	Current(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error)

	// Undo moves the cursor one snapshot back and returns the new state.
	Undo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error)

	// Redo moves the cursor one snapshot forward and returns the new state.
	Redo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error)

	// Clear discards the session's history and reseeds it from storage.
	Clear(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error)
}
