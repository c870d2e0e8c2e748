package services

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
	"github.com/fintrack/fintrack_app/internal/dto"
)

// CategorySvcFacade exposes category management operations.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error

	// FindOrCreateDefaultCategory returns the user's first category of the
	// given type, creating a default one when none exists. Consumed by the
	// allocation mark-paid flow for its synthetic transactions.
	FindOrCreateDefaultCategory(ctx context.Context, userID string, categoryType domain.CategoryType) (*domain.Category, error)
}
