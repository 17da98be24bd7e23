package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowType is the INCOME or EXPENSE classification shared by categories and
// transactions. A transaction's flow type must match its category's.
type FlowType string

const (
	Income  FlowType = "INCOME"
	Expense FlowType = "EXPENSE"
)

// Transaction is a single ledger entry against one account.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	OwnerID       string          `json:"ownerID"`       // Owning user
	AccountID     string          `json:"accountID"`     // FK -> Account
	CategoryID    string          `json:"categoryID"`    // FK -> Category
	Date          time.Time       `json:"date"`          // Calendar date of the event
	Amount        decimal.Decimal `json:"amount"`        // Strictly positive
	Type          FlowType        `json:"type"`          // Must equal the category's flow type
	Description   string          `json:"description"`   // Optional
	AuditFields

	// Resolved references for display; populated on reads, nil otherwise.
	Category *Category `json:"category,omitempty"`
	Account  *Account  `json:"account,omitempty"`
}

// SignedAmount returns the effect of the transaction on its account's balance:
// +Amount for INCOME, -Amount for EXPENSE.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Equal reports whether two transactions carry the same ledger-relevant state.
// Resolved sub-objects and audit fields are not part of snapshot identity.
func (t Transaction) Equal(o Transaction) bool {
	return t.TransactionID == o.TransactionID &&
		t.OwnerID == o.OwnerID &&
		t.AccountID == o.AccountID &&
		t.CategoryID == o.CategoryID &&
		t.Date.Equal(o.Date) &&
		t.Amount.Equal(o.Amount) &&
		t.Type == o.Type &&
		t.Description == o.Description
}
