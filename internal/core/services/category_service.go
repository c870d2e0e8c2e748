package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_app/internal/core/ports/services"
	"github.com/fintrack/fintrack_app/internal/dto"
	"github.com/fintrack/fintrack_app/internal/middleware"
	"github.com/google/uuid"
)

// defaultCategoryName is used when a category must be auto-provisioned for
// an allocation's synthetic transaction.
const defaultCategoryName = "General"

type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates the category management service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		Color:      req.Color,
		Budget:     req.Budget,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID, categoryType)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Budget != nil {
		category.Budget = req.Budget
	}
	category.LastUpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	return s.categoryRepo.DeleteCategory(ctx, userID, categoryID)
}

func (s *categoryService) FindOrCreateDefaultCategory(ctx context.Context, userID string, categoryType domain.CategoryType) (*domain.Category, error) {
	category, err := s.categoryRepo.FindFirstCategoryByType(ctx, userID, categoryType)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Auto-provisioning default category", slog.String("type", string(categoryType)))

	now := time.Now()
	fallback := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       defaultCategoryName,
		Type:       categoryType,
		Color:      "#9e9e9e",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, fallback); err != nil {
		logger.Error("Failed to auto-provision category", slog.String("error", err.Error()))
		return nil, err
	}
	return &fallback, nil
}
