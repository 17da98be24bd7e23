package services

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to handlers.
// Every method takes the opaque owner id of the already-authenticated caller;
// the core trusts it and never authenticates itself.
type AccountSvcFacade interface {
	// CreateAccount creates an account with an explicit initial balance (default 0).
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID returns the account, or apperrors.ErrNotFound when it does
	// not exist or belongs to a different owner.
	GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error)

	// ListAccounts returns all of the owner's accounts, ordered by name.
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)

	// UpdateAccount edits name and/or type. It never touches the balance.
	UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account. Returns apperrors.ErrConflict while any
	// transaction still references it.
	DeleteAccount(ctx context.Context, ownerID string, accountID string) error
}
