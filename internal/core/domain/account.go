package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies where the money of an account is held.
type AccountType string

const (
	Cash       AccountType = "CASH"
	Bank       AccountType = "BANK"
	EWallet    AccountType = "E_WALLET"
	Investment AccountType = "INVESTMENT"
)

// Account represents a financial account within the core domain.
//
// Balance is a cached value with a hard invariant: it always equals the signed
// sum (+amount for INCOME, -amount for EXPENSE) of the transactions referencing
// this account. Only the ledger repository's atomic write primitive may change it.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	OwnerID     string          `json:"ownerID"`   // Owning user
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
