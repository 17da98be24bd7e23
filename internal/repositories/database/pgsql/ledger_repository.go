package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	"github.com/budgetin-app/budgetin_backend/internal/models"
	"github.com/budgetin-app/budgetin_backend/internal/utils/mapping"
	"github.com/budgetin-app/budgetin_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository persists transactions. Every mutation wraps the row
// write and the implied account balance write(s) in one database transaction:
// the cached balances and the transaction set never diverge.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxLedgerRepository creates a new repository for transaction data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, owner_id, account_id, category_id, date, amount, flow_type, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.AccountID,
		&m.CategoryID,
		&m.Date,
		&m.Amount,
		&m.FlowType,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// lockAndApply locks the touched accounts and applies the balance deltas
// inside tx. Shared by all three mutations.
func (r *PgxLedgerRepository) lockAndApply(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, txn domain.Transaction) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for balance update: %w", err)
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, txn.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}
	return nil
}

// SaveTransaction inserts a transaction and applies its balance delta to the
// referenced account, atomically.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.OwnerID,
		modelTxn.AccountID,
		modelTxn.CategoryID,
		modelTxn.Date,
		modelTxn.Amount,
		modelTxn.FlowType,
		modelTxn.Description,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	if err := r.lockAndApply(ctx, tx, balanceChanges, txn.CreatedBy, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction persists the replacement fields and applies the given
// balance deltas to one or two accounts, atomically.
func (r *PgxLedgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, date = $4, amount = $5, flow_type = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.CategoryID,
		modelTxn.Date,
		modelTxn.Amount,
		modelTxn.FlowType,
		modelTxn.Description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, modelTxn.TransactionID)
	}

	if err := r.lockAndApply(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the record and reverses its balance effect, atomically.
func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, deletedBy string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock before deleting so the reversal applies against a stable balance.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for balance update: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, deletedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}

	return r.Commit(ctx, tx)
}

// SnapshotByOwner returns the owner's complete transaction set, newest first,
// with category and account references resolved in one query.
func (r *PgxLedgerRepository) SnapshotByOwner(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	query := `
		SELECT t.transaction_id, t.owner_id, t.account_id, t.category_id, t.date, t.amount, t.flow_type, t.description,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       c.category_id, c.name, c.flow_type, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
		       a.account_id, a.owner_id, a.name, a.account_type, a.balance, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.owner_id = $1
		ORDER BY t.date DESC, t.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger snapshot for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	snapshot := domain.Snapshot{}
	for rows.Next() {
		var mTxn models.Transaction
		var mCat models.Category
		var mAcc models.Account
		err := rows.Scan(
			&mTxn.TransactionID, &mTxn.OwnerID, &mTxn.AccountID, &mTxn.CategoryID, &mTxn.Date, &mTxn.Amount, &mTxn.FlowType, &mTxn.Description,
			&mTxn.CreatedAt, &mTxn.CreatedBy, &mTxn.LastUpdatedAt, &mTxn.LastUpdatedBy,
			&mCat.CategoryID, &mCat.Name, &mCat.FlowType, &mCat.CreatedAt, &mCat.CreatedBy, &mCat.LastUpdatedAt, &mCat.LastUpdatedBy,
			&mAcc.AccountID, &mAcc.OwnerID, &mAcc.Name, &mAcc.AccountType, &mAcc.Balance, &mAcc.CreatedAt, &mAcc.CreatedBy, &mAcc.LastUpdatedAt, &mAcc.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		txn := mapping.ToDomainTransaction(mTxn)
		cat := mapping.ToDomainCategory(mCat)
		acc := mapping.ToDomainAccount(mAcc)
		txn.Category = &cat
		txn.Account = &acc
		snapshot = append(snapshot, txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", rows.Err())
	}

	return snapshot, nil
}

// listTransactions runs a token-paginated list query. extraClause and
// extraArgs narrow the result (e.g. by account); args are 1-indexed after
// ownerID.
func (r *PgxLedgerRepository) listTransactions(ctx context.Context, ownerID string, limit int, nextToken *string, extraClause string, extraArgs ...any) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
	`
	args := []any{ownerID}
	args = append(args, extraArgs...)
	query += extraClause

	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(` AND (date, created_at) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, date, createdAt)
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), newNextToken, nil
}

// ListTransactionsByOwner retrieves a page of the owner's transactions, newest first.
func (r *PgxLedgerRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, ownerID, limit, nextToken, "")
}

// ListTransactionsByAccountID retrieves a page of one account's transactions, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, ownerID, limit, nextToken, ` AND account_id = $2`, accountID)
}

// CountTransactionsByAccountID returns how many transactions reference the account.
func (r *PgxLedgerRepository) CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}
