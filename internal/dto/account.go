package dto

import (
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Balance is the explicit initial balance; it defaults to zero.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"type" binding:"required,oneof=CASH BANK E_WALLET INVESTMENT"`
	Balance     decimal.Decimal    `json:"balance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Balance is intentionally absent: it only moves through ledger operations.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"type" binding:"omitempty,oneof=CASH BANK E_WALLET INVESTMENT"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"type"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
