package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	AccountID     string          `db:"account_id"`
	CategoryID    string          `db:"category_id"`
	Date          time.Time       `db:"date"`
	Amount        decimal.Decimal `db:"amount"` // Positive value; precise decimal type
	FlowType      FlowType        `db:"flow_type"`
	Description   string          `db:"description"`
	AuditFields
}
