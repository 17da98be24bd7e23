package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/core/history"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(ids ...string) domain.Snapshot {
	s := make(domain.Snapshot, 0, len(ids))
	for _, id := range ids {
		s = append(s, domain.Transaction{
			TransactionID: id,
			OwnerID:       "owner-1",
			AccountID:     "acc-1",
			CategoryID:    "cat-1",
			Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Amount:        decimal.NewFromInt(100),
			Type:          domain.Expense,
		})
	}
	return s
}

func TestPushMovesPresentAndClearsFuture(t *testing.T) {
	h := history.New(snapshotWith(), 10)

	s1 := snapshotWith("t1")
	s2 := snapshotWith("t1", "t2")

	assert.True(t, h.Push(s1))
	assert.True(t, h.Push(s2))
	assert.True(t, h.Present().Equal(s2))
	assert.Equal(t, 2, h.Depth())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestPushOfEqualSnapshotIsNoOp(t *testing.T) {
	h := history.New(snapshotWith(), 10)
	s1 := snapshotWith("t1")

	require.True(t, h.Push(s1))
	assert.False(t, h.Push(snapshotWith("t1")), "value-equal push must not grow history")
	assert.Equal(t, 1, h.Depth())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := history.New(snapshotWith(), 10)
	s1 := snapshotWith("t1")
	s2 := snapshotWith("t1", "t2")
	h.Push(s1)
	h.Push(s2)

	got, ok := h.Undo()
	require.True(t, ok)
	assert.True(t, got.Equal(s1))
	assert.True(t, h.CanRedo())

	got, ok = h.Redo()
	require.True(t, ok)
	assert.True(t, got.Equal(s2))
	assert.False(t, h.CanRedo())
}

func TestUndoOnEmptyPastIsNoOp(t *testing.T) {
	seed := snapshotWith("t1")
	h := history.New(seed, 10)

	got, ok := h.Undo()
	assert.False(t, ok)
	assert.True(t, got.Equal(seed))
}

func TestRedoOnEmptyFutureIsNoOp(t *testing.T) {
	h := history.New(snapshotWith(), 10)
	h.Push(snapshotWith("t1"))

	got, ok := h.Redo()
	assert.False(t, ok)
	assert.True(t, got.Equal(snapshotWith("t1")))
}

func TestPushAfterUndoDiscardsRedoBranch(t *testing.T) {
	h := history.New(snapshotWith(), 10)
	s1 := snapshotWith("t1")
	s2 := snapshotWith("t1", "t2")
	s3 := snapshotWith("t1", "t3")

	h.Push(s1)
	h.Push(s2)
	_, ok := h.Undo()
	require.True(t, ok)
	require.True(t, h.Push(s3))

	// The branch containing s2 is gone; redo must be a no-op.
	got, ok := h.Redo()
	assert.False(t, ok)
	assert.True(t, got.Equal(s3))
	assert.True(t, h.Present().Equal(s3))
}

func TestHistoryIsBounded(t *testing.T) {
	const limit = 10
	h := history.New(snapshotWith(), limit)

	for i := 0; i < limit+5; i++ {
		h.Push(snapshotWith(fmt.Sprintf("t%d", i)))
	}

	assert.Equal(t, limit, h.Depth())

	// Only the most recent entries survive; undoing all the way down lands on
	// the oldest retained snapshot, not the seed.
	var last domain.Snapshot
	for h.CanUndo() {
		last, _ = h.Undo()
	}
	assert.True(t, last.Equal(snapshotWith("t4")))
}

func TestClearResetsToSeed(t *testing.T) {
	seed := snapshotWith("seed")
	h := history.New(seed, 10)
	h.Push(snapshotWith("t1"))
	h.Push(snapshotWith("t2"))
	h.Undo()

	h.Clear()

	assert.True(t, h.Present().Equal(seed))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestReseedReplacesSeed(t *testing.T) {
	h := history.New(snapshotWith("old"), 10)
	h.Push(snapshotWith("t1"))

	fresh := snapshotWith("fresh")
	h.Reseed(fresh)

	assert.True(t, h.Present().Equal(fresh))
	assert.False(t, h.CanUndo())

	h.Clear()
	assert.True(t, h.Present().Equal(fresh))
}

func TestPushedSnapshotIsCopied(t *testing.T) {
	h := history.New(snapshotWith(), 10)
	s1 := snapshotWith("t1", "t2")
	h.Push(s1)

	// Mutating the caller's slice must not reach into history state.
	s1[0].Description = "mutated"
	assert.Empty(t, h.Present()[0].Description)
}
