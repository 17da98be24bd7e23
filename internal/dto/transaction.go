package dto

import (
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount decodes through decimal.Decimal and fails closed on non-numeric input;
// no float parsing happens anywhere on this path.
type CreateTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
	Type        domain.FlowType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
}

// UpdateTransactionRequest carries the full replacement field set for a
// transaction, mirroring CreateTransactionRequest.
type UpdateTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
	Type        domain.FlowType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
}

// TransactionResponse defines the data returned for a transaction, with the
// referenced category and account resolved for display.
type TransactionResponse struct {
	TransactionID string            `json:"transactionID"`
	Date          time.Time         `json:"date"`
	Amount        decimal.Decimal   `json:"amount"`
	Type          domain.FlowType   `json:"type"`
	Description   string            `json:"description"`
	CategoryID    string            `json:"categoryID"`
	AccountID     string            `json:"accountID"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Account       *AccountResponse  `json:"account,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the cursor for the
// next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Description:   txn.Description,
		CategoryID:    txn.CategoryID,
		AccountID:     txn.AccountID,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.LastUpdatedAt,
	}
	if txn.Category != nil {
		cat := ToCategoryResponse(txn.Category)
		resp.Category = &cat
	}
	if txn.Account != nil {
		acc := ToAccountResponse(txn.Account)
		resp.Account = &acc
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
