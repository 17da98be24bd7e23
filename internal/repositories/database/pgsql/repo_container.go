package pgsql

import (
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		CategoryRepo: categoryRepo,
		LedgerRepo:   ledgerRepo,
	}
}
