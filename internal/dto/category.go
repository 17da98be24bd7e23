package dto

import (
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name     string          `json:"name" binding:"required"`
	FlowType domain.FlowType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	FlowType   domain.FlowType `json:"type"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	FlowType *domain.FlowType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// ToCategoryResponse converts a domain.Category to a CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		FlowType:   cat.FlowType,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
