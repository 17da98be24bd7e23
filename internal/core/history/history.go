// Package history implements a linear, boundedly-deep undo/redo stack over
// whole-ledger snapshots. It knows nothing about what changed between two
// snapshots, only whole-snapshot identity.
package history

import (
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
)

// DefaultLimit is the number of past snapshots retained when no explicit
// limit is configured.
const DefaultLimit = 10

// History is the (past, present, future) state machine. It is not safe for
// concurrent use; callers own the synchronization (one session per owner).
type History struct {
	limit   int
	seed    domain.Snapshot
	past    []domain.Snapshot
	present domain.Snapshot
	future  []domain.Snapshot
}

// New creates a history seeded with the given snapshot. A non-positive limit
// falls back to DefaultLimit.
func New(seed domain.Snapshot, limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		limit:   limit,
		seed:    seed.Clone(),
		present: seed.Clone(),
	}
}

// Push makes next the present snapshot. A push of a snapshot value-equal to
// the present is a no-op, so redundant pushes cannot pollute the undo stack.
// Any redo branch is discarded: history is linear, not a tree.
// It reports whether the history changed.
func (h *History) Push(next domain.Snapshot) bool {
	if h.present.Equal(next) {
		return false
	}
	h.past = append(h.past, h.present)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next.Clone()
	h.future = nil
	return true
}

// Undo moves the cursor one snapshot back. On an empty past it is a no-op,
// not an error, and reports false.
func (h *History) Undo() (domain.Snapshot, bool) {
	if len(h.past) == 0 {
		return h.present, false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]domain.Snapshot{h.present}, h.future...)
	h.present = previous
	return h.present, true
}

// Redo moves the cursor one snapshot forward. On an empty future it is a
// no-op and reports false.
func (h *History) Redo() (domain.Snapshot, bool) {
	if len(h.future) == 0 {
		return h.present, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return h.present, true
}

// Clear resets the history to its seed snapshot with empty past and future.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
	h.present = h.seed.Clone()
}

// Reseed replaces the seed and resets the history to it. Used when the
// backing ledger is reloaded from storage.
func (h *History) Reseed(seed domain.Snapshot) {
	h.seed = seed.Clone()
	h.Clear()
}

// Present returns the current snapshot.
func (h *History) Present() domain.Snapshot {
	return h.present
}

// CanUndo reports whether an Undo would change the present snapshot.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether a Redo would change the present snapshot.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Depth returns the number of retained past snapshots.
func (h *History) Depth() int {
	return len(h.past)
}
