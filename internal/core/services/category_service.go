package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetin-app/budgetin_backend/internal/core/ports/services"
	"github.com/budgetin-app/budgetin_backend/internal/dto"
	"github.com/google/uuid"
)

// categoryService implements the CategorySvcFacade interface.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// Ensure categoryService implements the CategorySvcFacade interface.
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	now := time.Now().UTC()

	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		FlowType:   req.FlowType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Duplicate category rejected",
				slog.String("name", req.Name),
				slog.String("flow_type", string(req.FlowType)))
		} else {
			s.LogError(ctx, err, "Failed to save category",
				slog.String("category_id", category.CategoryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, flowType *domain.FlowType) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, flowType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
