package repositories

import (
	"context"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByOwner retrieves all accounts of an owner, ordered by name.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
// Note: none of these touch Balance; balance writes go exclusively through
// AccountBalanceSupport inside a ledger mutation's database transaction.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's name and type.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Returns apperrors.ErrConflict when
	// transactions still reference it.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountBalanceSupport defines the balance operations used by ledger mutations.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update
	// within a transaction. Accounts are locked in sorted id order.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adds each delta to the matching account's balance
	// within the given transaction. A missing account surfaces as
	// apperrors.ErrConsistency; the caller must roll back.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
