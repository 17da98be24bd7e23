package models

// FlowType is the INCOME/EXPENSE classification shared by categories and transactions.
type FlowType string

const (
	Income  FlowType = "INCOME"
	Expense FlowType = "EXPENSE"
)

// Category is the categories table row. (name, flow_type) carries a unique constraint.
type Category struct {
	CategoryID string   `db:"category_id"`
	Name       string   `db:"name"`
	FlowType   FlowType `db:"flow_type"`
	AuditFields
}
