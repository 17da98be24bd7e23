package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService enforces the balance invariant across every mutation of the
// transaction set: an account's cached balance always equals the signed sum of
// the transactions referencing it. Each mutation is handed to the repository
// as one all-or-nothing write, and the resulting whole-ledger snapshot is
// pushed into the history engine.
type ledgerService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	historySvc   portssvc.HistorySvcFacade

	// ownerLocks serializes mutations per owner so that an Update's two-account
	// balance adjustment cannot interleave with a concurrent Create/Delete
	// touching either account.
	ownerLocks sync.Map // ownerID -> *sync.Mutex
}

// NewLedgerService creates a new ledger service. historySvc may be nil when no
// undo/redo session is wired (e.g. batch tooling).
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryReader, historySvc portssvc.HistorySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		historySvc:   historySvc,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface.
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// lockOwner acquires the per-owner mutation lock and returns its release func.
func (s *ledgerService) lockOwner(ownerID string) func() {
	v, _ := s.ownerLocks.LoadOrStore(ownerID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// validateReferences checks the category and account a transaction points at:
// the category must exist and carry the transaction's flow type, the account
// must exist and belong to the owner. Nothing is mutated on failure.
func (s *ledgerService) validateReferences(ctx context.Context, ownerID, categoryID, accountID string, flow domain.FlowType) (*domain.Category, *domain.Account, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, nil, fmt.Errorf("failed to fetch category %s: %w", categoryID, err)
	}
	if category.FlowType != flow {
		return nil, nil, fmt.Errorf("%w: %s vs category %s", apperrors.ErrValidation, flow, category.FlowType)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if account.OwnerID != ownerID {
		// Obscure existence of other owners' accounts.
		return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	return category, account, nil
}

// CreateTransaction records a new transaction and applies its signed amount to
// the referenced account's balance in one atomic repository write.
func (s *ledgerService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrValidation, req.Amount.String())
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	category, account, err := s.validateReferences(ctx, ownerID, req.CategoryID, req.AccountID, req.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Date:          req.Date,
		Amount:        req.Amount,
		Type:          req.Type,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	delta := txn.SignedAmount()
	balanceChanges := map[string]decimal.Decimal{txn.AccountID: delta}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("account_id", txn.AccountID))
		return nil, err
	}

	s.pushSnapshot(ctx, ownerID)

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID))

	// Resolve references for the response; the account copy reflects the
	// balance after this mutation.
	account.Balance = account.Balance.Add(delta)
	txn.Category = category
	txn.Account = account
	return &txn, nil
}

// UpdateTransaction replaces a transaction's fields. The old balance effect is
// reversed and the new one applied: a same-account edit collapses into a
// single balance write of (newDelta - oldDelta); a cross-account move adjusts
// both accounts. Either way the repository treats the writes as one
// all-or-nothing operation.
func (s *ledgerService) UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrValidation, req.Amount.String())
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	existing, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for update",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	category, account, err := s.validateReferences(ctx, ownerID, req.CategoryID, req.AccountID, req.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := domain.Transaction{
		TransactionID: existing.TransactionID,
		OwnerID:       existing.OwnerID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Date:          req.Date,
		Amount:        req.Amount,
		Type:          req.Type,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	oldDelta := existing.SignedAmount()
	newDelta := updated.SignedAmount()

	balanceChanges := make(map[string]decimal.Decimal)
	var appliedToNew decimal.Decimal
	if existing.AccountID == updated.AccountID {
		change := newDelta.Sub(oldDelta)
		if !change.IsZero() {
			balanceChanges[updated.AccountID] = change
		}
		appliedToNew = change
	} else {
		balanceChanges[existing.AccountID] = oldDelta.Neg()
		balanceChanges[updated.AccountID] = newDelta
		appliedToNew = newDelta
	}

	if err := s.ledgerRepo.UpdateTransaction(ctx, updated, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.pushSnapshot(ctx, ownerID)

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID),
		slog.String("account_id", updated.AccountID))

	account.Balance = account.Balance.Add(appliedToNew)
	updated.Category = category
	updated.Account = account
	return &updated, nil
}

// DeleteTransaction reverses the transaction's balance effect on its account
// and removes the record, both as one atomic unit.
func (s *ledgerService) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	unlock := s.lockOwner(ownerID)
	defer unlock()

	existing, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for deletion",
				slog.String("transaction_id", transactionID))
		}
		return err
	}
	if existing.OwnerID != ownerID {
		return apperrors.ErrNotFound
	}

	balanceChanges := map[string]decimal.Decimal{
		existing.AccountID: existing.SignedAmount().Neg(),
	}

	if err := s.ledgerRepo.DeleteTransaction(ctx, transactionID, ownerID, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.pushSnapshot(ctx, ownerID)

	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID),
		slog.String("account_id", existing.AccountID))
	return nil
}

// ListTransactions returns the owner's transactions, newest first, with
// category and account references resolved.
func (s *ledgerService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.ledgerRepo.ListTransactionsByOwner(ctx, ownerID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// ListTransactionsByAccount returns one account's transactions, newest first.
func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, ownerID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, ownerID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by account",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// pushSnapshot loads the owner's full post-mutation ledger and hands it to the
// history engine. The mutation itself has already committed; a failure here
// only degrades the undo/redo session, so it is logged and not propagated.
func (s *ledgerService) pushSnapshot(ctx context.Context, ownerID string) {
	if s.historySvc == nil {
		return
	}

	snap, err := s.ledgerRepo.SnapshotByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger snapshot for history push")
		return
	}
	if err := s.historySvc.Push(ctx, ownerID, snap); err != nil {
		s.LogError(ctx, err, "Failed to push ledger snapshot into history")
	}
}
