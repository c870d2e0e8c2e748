package repositories

import (
	"context"

	"github.com/fintrack/fintrack_app/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)

	// FindFirstCategoryByType returns the user's oldest category of the
	// given type, or ErrNotFound when the user has none.
	FindFirstCategoryByType(ctx context.Context, userID string, categoryType domain.CategoryType) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}
