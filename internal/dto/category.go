package dto

import (
	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name   string              `json:"name" binding:"required"`
	Type   domain.CategoryType `json:"type" binding:"required,oneof=income expense"`
	Color  string              `json:"color"`
	Budget *decimal.Decimal    `json:"budget"`
}

// UpdateCategoryRequest defines the fields allowed for updating a category.
type UpdateCategoryRequest struct {
	Name   *string          `json:"name"`
	Color  *string          `json:"color"`
	Budget *decimal.Decimal `json:"budget"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Color      string              `json:"color"`
	Budget     *decimal.Decimal    `json:"budget,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      c.Color,
		Budget:     c.Budget,
	}
}

// ToListCategoryResponse converts a slice of categories to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
