package repositories

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for transaction data.
type LedgerReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// SnapshotByOwner returns the owner's complete transaction set as a
	// snapshot, ordered by date descending (created_at descending as
	// tie-breaker), with category and account references resolved.
	SnapshotByOwner(ctx context.Context, ownerID string) (domain.Snapshot, error)

	// ListTransactionsByOwner retrieves a paginated list of the owner's
	// transactions using token-based pagination, newest first.
	ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccountID retrieves a paginated list of the
	// transactions referencing one account, newest first.
	ListTransactionsByAccountID(ctx context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CountTransactionsByAccountID returns how many transactions reference the
	// account. Used for the account-deletion referential integrity guard.
	CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error)
}

// LedgerWriter defines the ledger mutations. Every method wraps the
// transaction row write and the implied account balance write(s) in a single
// database transaction: either all records change or none do.
type LedgerWriter interface {
	// SaveTransaction inserts a transaction and applies its balance delta to
	// the referenced account.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction persists new transaction fields and applies the given
	// balance deltas to one or two accounts.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction reverses the transaction's balance effect and removes
	// the record. deletedBy stamps the balance adjustment's audit fields.
	DeleteTransaction(ctx context.Context, transactionID string, deletedBy string, balanceChanges map[string]decimal.Decimal) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
