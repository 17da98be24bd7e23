package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
}

// NewAccountService creates a new account service. The ledger reader backs the
// referential-integrity guard on deletion.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface.
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()

	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     req.Balance, // explicit initial balance, zero when absent
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.OwnerID != ownerID {
		s.LogDebug(ctx, "Account found but belongs to different owner",
			slog.String("account_id", accountID))
		// Return NotFound to obscure existence from other owners.
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}

	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	// Name and type only. The balance is owned by the ledger engine and never
	// moves through this path.
	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = ownerID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, ownerID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, ownerID, accountID); err != nil {
		return err
	}

	count, err := s.ledgerRepo.CountTransactionsByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions for account deletion",
			slog.String("account_id", accountID))
		return fmt.Errorf("failed to check transactions for account %s: %w", accountID, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %s still has %d referencing transactions", apperrors.ErrConflict, accountID, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully",
		slog.String("account_id", accountID))
	return nil
}
