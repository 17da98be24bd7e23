package models

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

// Account is the accounts table row. Balance is the cached signed sum of the
// account's transactions; only ApplyBalanceChangesInTx writes it.
type Account struct {
	AccountID   string          `db:"account_id"`
	OwnerID     string          `db:"owner_id"`
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}
