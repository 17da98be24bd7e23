package services_test

import (
	"context"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SnapshotByOwner(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, deletedBy string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, deletedBy, balanceChanges)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, flowType *domain.FlowType) ([]domain.Category, error) {
	args := m.Called(ctx, flowType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

func (m *MockHistoryService) Push(ctx context.Context, ownerID string, snap domain.Snapshot) error {
	args := m.Called(ctx, ownerID, snap)
	return args.Error(0)
}

func (m *MockHistoryService) Current(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(domain.Snapshot), args.Bool(1), args.Bool(2), args.Error(3)
}

func (m *MockHistoryService) Undo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(domain.Snapshot), args.Bool(1), args.Bool(2), args.Error(3)
}

func (m *MockHistoryService) Redo(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(domain.Snapshot), args.Bool(1), args.Bool(2), args.Error(3)
}

func (m *MockHistoryService) Clear(ctx context.Context, ownerID string) (domain.Snapshot, bool, bool, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(domain.Snapshot), args.Bool(1), args.Bool(2), args.Error(3)
}
