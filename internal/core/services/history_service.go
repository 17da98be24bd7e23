package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/core/history"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
)

// historyService keeps one bounded undo/redo session per owner, seeded lazily
// from the stored ledger on first touch. Undo and redo move a session-local
// view of the ledger; they never write back to storage.
type historyService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	limit      int

	mu       sync.Mutex
	sessions map[string]*history.History
}

// NewHistoryService creates a new history service. limit bounds each owner's
// undo depth; values below 1 fall back to history.DefaultLimit.
func NewHistoryService(ledgerRepo portsrepo.LedgerReader, limit int) portssvc.HistorySvcFacade {
	if limit < 1 {
		limit = history.DefaultLimit
	}
	return &historyService{
		ledgerRepo: ledgerRepo,
		limit:      limit,
		sessions:   make(map[string]*history.History),
	}
}

// Ensure historyService implements the HistorySvcFacade interface.
var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// session returns the owner's history, creating and seeding it on first use.
// Callers hold s.mu for the whole operation so session transitions stay
// atomic per owner.
func (s *historyService) session(ctx context.Context, ownerID string) (*history.History, error) {
	if h, ok := s.sessions[ownerID]; ok {
		return h, nil
	}

	seed, err := s.ledgerRepo.SnapshotByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed ledger history: %w", err)
	}

	h := history.New(seed, s.limit)
	s.sessions[ownerID] = h
	return h, nil
}

func (s *historyService) Push(ctx context.Context, ownerID string, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.session(ctx, ownerID)
	if err != nil {
		return err
	}

	if h.Push(snap) {
		s.LogDebug(ctx, "Ledger snapshot pushed",
			slog.Int("undo_depth", h.Depth()))
	}
	return nil
}

func (s *historyService) Current(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.session(ctx, ownerID)
	if err != nil {
		return nil, false, false, err
	}
	return h.Present(), h.CanUndo(), h.CanRedo(), nil
}

func (s *historyService) Undo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.session(ctx, ownerID)
	if err != nil {
		return nil, false, false, err
	}

	if snap, ok := h.Undo(); ok {
		s.LogInfo(ctx, "Ledger undo applied",
			slog.Int("undo_depth", h.Depth()))
		return snap, h.CanUndo(), h.CanRedo(), nil
	}

	// Empty past: no-op, return the unchanged present.
	return h.Present(), h.CanUndo(), h.CanRedo(), nil
}

func (s *historyService) Redo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.session(ctx, ownerID)
	if err != nil {
		return nil, false, false, err
	}

	if snap, ok := h.Redo(); ok {
		s.LogInfo(ctx, "Ledger redo applied",
			slog.Int("undo_depth", h.Depth()))
		return snap, h.CanUndo(), h.CanRedo(), nil
	}

	return h.Present(), h.CanUndo(), h.CanRedo(), nil
}

func (s *historyService) Clear(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clear reseeds from storage so the session restarts at the ledger's
	// current committed state rather than at a stale seed.
	seed, err := s.ledgerRepo.SnapshotByOwner(ctx, ownerID)
	if err != nil {
		return nil, false, false, fmt.Errorf("failed to reseed ledger history: %w", err)
	}

	h, ok := s.sessions[ownerID]
	if !ok {
		h = history.New(seed, s.limit)
		s.sessions[ownerID] = h
	} else {
		h.Reseed(seed)
	}

	s.LogInfo(ctx, "Ledger history cleared")
	return h.Present(), h.CanUndo(), h.CanRedo(), nil
}
