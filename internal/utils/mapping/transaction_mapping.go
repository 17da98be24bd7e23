package mapping

import (
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OwnerID:       d.OwnerID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		Date:          d.Date,
		Amount:        d.Amount,
		FlowType:      models.FlowType(d.Type),
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Date:          m.Date,
		Amount:        m.Amount,
		Type:          domain.FlowType(m.FlowType),
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
