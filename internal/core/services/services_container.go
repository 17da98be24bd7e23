package services

import (
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// History first: the ledger service pushes snapshots into it.
	container.History = NewHistoryService(repos.LedgerRepo, cfg.HistoryLimit)

	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		container.History,
	)

	return container
}
