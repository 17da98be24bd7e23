package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/internal/core/services"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	mockHistorySvc   *MockHistoryService
	service          portssvc.LedgerSvcFacade

	ownerID         string
	cashAccount     domain.Account
	bankAccount     domain.Account
	expenseCategory domain.Category
	incomeCategory  domain.Category
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockHistorySvc = new(MockHistoryService)
	s.service = services.NewLedgerService(s.mockLedgerRepo, s.mockAccountRepo, s.mockCategoryRepo, s.mockHistorySvc)

	s.ownerID = uuid.NewString()
	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     s.ownerID,
		Name:        "Wallet",
		AccountType: domain.Cash,
		Balance:     decimal.Zero,
	}
	s.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     s.ownerID,
		Name:        "Checking",
		AccountType: domain.Bank,
		Balance:     decimal.NewFromInt(1000),
	}
	s.expenseCategory = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Groceries",
		FlowType:   domain.Expense,
	}
	s.incomeCategory = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Salary",
		FlowType:   domain.Income,
	}
}

// expectSnapshotPush covers the post-mutation history push.
func (s *LedgerServiceTestSuite) expectSnapshotPush() {
	s.mockLedgerRepo.On("SnapshotByOwner", mock.Anything, s.ownerID).Return(domain.Snapshot{}, nil).Once()
	s.mockHistorySvc.On("Push", mock.Anything, s.ownerID, mock.Anything).Return(nil).Once()
}

// matchBalanceChanges asserts the deltas by numeric value rather than
// representation (500 vs 500.00).
func matchBalanceChanges(expected map[string]decimal.Decimal) any {
	return mock.MatchedBy(func(actual map[string]decimal.Decimal) bool {
		if len(actual) != len(expected) {
			return false
		}
		for accID, want := range expected {
			got, ok := actual[accID]
			if !ok || !got.Equal(want) {
				return false
			}
		}
		return true
	})
}

func (s *LedgerServiceTestSuite) TestCreateExpenseSubtractsFromBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:       time.Now().UTC(),
		Amount:     decimal.NewFromInt(500),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  s.cashAccount.AccountID,
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	acc := s.cashAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cashAccount.AccountID).Return(&acc, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx, mock.Anything,
		matchBalanceChanges(map[string]decimal.Decimal{s.cashAccount.AccountID: decimal.NewFromInt(-500)}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), txn)
	assert.Equal(s.T(), s.ownerID, txn.OwnerID)
	assert.True(s.T(), txn.SignedAmount().Equal(decimal.NewFromInt(-500)))
	assert.NotNil(s.T(), txn.Account)
	assert.True(s.T(), txn.Account.Balance.Equal(decimal.NewFromInt(-500)))
	s.mockLedgerRepo.AssertExpectations(s.T())
	s.mockHistorySvc.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateIncomeAddsToBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:       time.Now().UTC(),
		Amount:     decimal.NewFromInt(250),
		Type:       domain.Income,
		CategoryID: s.incomeCategory.CategoryID,
		AccountID:  s.bankAccount.AccountID,
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.incomeCategory.CategoryID).Return(&s.incomeCategory, nil).Once()
	acc := s.bankAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&acc, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx, mock.Anything,
		matchBalanceChanges(map[string]decimal.Decimal{s.bankAccount.AccountID: decimal.NewFromInt(250)}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	assert.NoError(s.T(), err)
	assert.True(s.T(), txn.Account.Balance.Equal(decimal.NewFromInt(1250)))
}

func (s *LedgerServiceTestSuite) TestCreateRejectsNonPositiveAmount() {
	ctx := context.Background()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.CreateTransactionRequest{
			Date:       time.Now().UTC(),
			Amount:     amount,
			Type:       domain.Expense,
			CategoryID: s.expenseCategory.CategoryID,
			AccountID:  s.cashAccount.AccountID,
		}

		txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

		assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
		assert.Nil(s.T(), txn)
	}
	// Nothing was written.
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsFlowTypeMismatch() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:       time.Now().UTC(),
		Amount:     decimal.NewFromInt(100),
		Type:       domain.Income,
		CategoryID: s.expenseCategory.CategoryID, // EXPENSE category on an INCOME transaction
		AccountID:  s.cashAccount.AccountID,
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.Nil(s.T(), txn)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsForeignAccount() {
	ctx := context.Background()
	foreignAccount := domain.Account{
		AccountID: uuid.NewString(),
		OwnerID:   uuid.NewString(), // different owner
	}
	req := dto.CreateTransactionRequest{
		Date:       time.Now().UTC(),
		Amount:     decimal.NewFromInt(100),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  foreignAccount.AccountID,
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, foreignAccount.AccountID).Return(&foreignAccount, nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.Nil(s.T(), txn)
}

// existingExpense builds a stored 500 EXPENSE on the cash account.
func (s *LedgerServiceTestSuite) existingExpense() domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       s.ownerID,
		AccountID:     s.cashAccount.AccountID,
		CategoryID:    s.expenseCategory.CategoryID,
		Date:          time.Now().UTC().Add(-24 * time.Hour),
		Amount:        decimal.NewFromInt(500),
		Type:          domain.Expense,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC().Add(-24 * time.Hour),
			CreatedBy: s.ownerID,
		},
	}
}

func (s *LedgerServiceTestSuite) TestUpdateSameAccountCollapsesToSingleDelta() {
	ctx := context.Background()
	existing := s.existingExpense()
	req := dto.UpdateTransactionRequest{
		Date:       existing.Date,
		Amount:     decimal.NewFromInt(300),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  s.cashAccount.AccountID,
	}

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	acc := s.cashAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cashAccount.AccountID).Return(&acc, nil).Once()
	// old delta -500 reversed plus new delta -300 collapses to +200
	s.mockLedgerRepo.On("UpdateTransaction", ctx, mock.Anything,
		matchBalanceChanges(map[string]decimal.Decimal{s.cashAccount.AccountID: decimal.NewFromInt(200)}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	txn, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, req)

	assert.NoError(s.T(), err)
	assert.True(s.T(), txn.Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(s.T(), existing.CreatedAt, txn.CreatedAt)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestUpdateUnchangedAmountSendsNoDeltas() {
	ctx := context.Background()
	existing := s.existingExpense()
	req := dto.UpdateTransactionRequest{
		Date:        existing.Date,
		Amount:      existing.Amount,
		Type:        existing.Type,
		CategoryID:  existing.CategoryID,
		AccountID:   existing.AccountID,
		Description: "annotated after the fact",
	}

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	acc := s.cashAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cashAccount.AccountID).Return(&acc, nil).Once()
	s.mockLedgerRepo.On("UpdateTransaction", ctx, mock.Anything,
		matchBalanceChanges(map[string]decimal.Decimal{}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	txn, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, req)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "annotated after the fact", txn.Description)
}

func (s *LedgerServiceTestSuite) TestUpdateCrossAccountMovesBothBalances() {
	ctx := context.Background()
	existing := s.existingExpense()
	req := dto.UpdateTransactionRequest{
		Date:       existing.Date,
		Amount:     decimal.NewFromInt(500),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  s.bankAccount.AccountID, // moved from cash to bank
	}

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	acc := s.bankAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.bankAccount.AccountID).Return(&acc, nil).Once()
	s.mockLedgerRepo.On("UpdateTransaction", ctx, mock.Anything,
		matchBalanceChanges(map[string]decimal.Decimal{
			s.cashAccount.AccountID: decimal.NewFromInt(500),  // reversal
			s.bankAccount.AccountID: decimal.NewFromInt(-500), // new effect
		}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	txn, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, req)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.bankAccount.AccountID, txn.AccountID)
	assert.True(s.T(), txn.Account.Balance.Equal(decimal.NewFromInt(500))) // 1000 - 500
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestUpdateRejectsForeignTransaction() {
	ctx := context.Background()
	existing := s.existingExpense()
	existing.OwnerID = uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()

	req := dto.UpdateTransactionRequest{
		Date:       existing.Date,
		Amount:     decimal.NewFromInt(100),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  s.cashAccount.AccountID,
	}
	txn, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, req)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.Nil(s.T(), txn)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestDeleteReversesBalanceEffect() {
	ctx := context.Background()
	existing := s.existingExpense()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()
	s.mockLedgerRepo.On("DeleteTransaction", ctx, existing.TransactionID, s.ownerID,
		matchBalanceChanges(map[string]decimal.Decimal{s.cashAccount.AccountID: decimal.NewFromInt(500)}),
	).Return(nil).Once()
	s.expectSnapshotPush()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	assert.NoError(s.T(), err)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestDeleteRejectsForeignTransaction() {
	ctx := context.Background()
	existing := s.existingExpense()
	existing.OwnerID = uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&existing, nil).Once()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestRepositoryFailurePropagatesAndSkipsHistory() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:       time.Now().UTC(),
		Amount:     decimal.NewFromInt(100),
		Type:       domain.Expense,
		CategoryID: s.expenseCategory.CategoryID,
		AccountID:  s.cashAccount.AccountID,
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	acc := s.cashAccount
	s.mockAccountRepo.On("FindAccountByID", ctx, s.cashAccount.AccountID).Return(&acc, nil).Once()
	s.mockLedgerRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrConsistency).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	assert.ErrorIs(s.T(), err, apperrors.ErrConsistency)
	assert.Nil(s.T(), txn)
	s.mockHistorySvc.AssertNotCalled(s.T(), "Push", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestListTransactionsByAccountChecksOwnership() {
	ctx := context.Background()
	foreignAccount := domain.Account{
		AccountID: uuid.NewString(),
		OwnerID:   uuid.NewString(),
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, foreignAccount.AccountID).Return(&foreignAccount, nil).Once()

	resp, err := s.service.ListTransactionsByAccount(ctx, s.ownerID, foreignAccount.AccountID, dto.ListTransactionsParams{Limit: 10})

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.Nil(s.T(), resp)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "ListTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
