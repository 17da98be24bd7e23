package services

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
)

// LedgerSvcFacade is the ledger engine: every mutation of the transaction set
// goes through it, and each one atomically updates the affected account
// balance(s) before pushing the resulting snapshot into the history engine.
type LedgerSvcFacade interface {
	// CreateTransaction validates and records a transaction, applying
	// +amount (INCOME) / -amount (EXPENSE) to the referenced account's balance.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction reverses the old balance effect and applies the new
	// one, across one or two accounts, as one all-or-nothing operation.
	UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's balance effect and removes it.
	DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error

	// ListTransactions returns the owner's transactions, newest first.
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByAccount returns one account's transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, ownerID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
