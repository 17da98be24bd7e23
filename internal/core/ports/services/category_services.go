package services

import (
	"context"

	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
)

// CategorySvcFacade defines the category operations exposed to handlers.
// Categories are shared reference data: created once, then read-mostly.
type CategorySvcFacade interface {
	// CreateCategory creates a category. A duplicate (name, flow type) pair
	// returns apperrors.ErrDuplicate.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// GetCategoryByID retrieves a category by id.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories lists categories, optionally filtered by flow type.
	ListCategories(ctx context.Context, flowType *domain.FlowType) ([]domain.Category, error)
}
