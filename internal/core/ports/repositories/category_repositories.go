package repositories

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories, optionally filtered by flow type.
	ListCategories(ctx context.Context, flowType *domain.FlowType) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
type CategoryWriter interface {
	// SaveCategory persists a new category. A duplicate (name, flow type) pair
	// surfaces as apperrors.ErrDuplicate.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
