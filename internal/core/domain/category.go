package domain

// Category labels transactions of one flow type. The (Name, FlowType) pair is
// unique; categories are created once and then read-mostly.
type Category struct {
	CategoryID string   `json:"categoryID"` // Primary key (UUID)
	Name       string   `json:"name"`
	FlowType   FlowType `json:"flowType"`
	AuditFields
}
