package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_app/internal/apperrors"
	"github.com/fintrack/fintrack_app/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_app/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		UserID:     d.UserID,
		Name:       d.Name,
		Type:       string(d.Type),
		Color:      d.Color,
		Budget:     d.Budget,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Name:       m.Name,
		Type:       domain.CategoryType(m.Type),
		Color:      m.Color,
		Budget:     m.Budget,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const categoryColumns = `category_id, user_id, name, type, color, budget, created_at, last_updated_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.Color,
		&m.Budget,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.UserID,
		modelCat.Name,
		modelCat.Type,
		modelCat.Color,
		modelCat.Budget,
		modelCat.CreatedAt,
		modelCat.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, modelCat.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category scoped to its owner.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1 AND user_id = $2;`

	m, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	domainCat := toDomainCategory(*m)
	return &domainCat, nil
}

// ListCategories retrieves the user's categories, optionally narrowed by type.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}

// FindFirstCategoryByType returns the user's oldest category of the given
// type, or ErrNotFound when there is none.
func (r *PgxCategoryRepository) FindFirstCategoryByType(ctx context.Context, userID string, categoryType domain.CategoryType) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at
		LIMIT 1;
	`
	m, err := scanCategory(r.pool.QueryRow(ctx, query, userID, string(categoryType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by type %s: %w", categoryType, err)
	}

	domainCat := toDomainCategory(*m)
	return &domainCat, nil
}

// UpdateCategory updates the category's editable fields. The type is fixed
// at creation.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)

	query := `
		UPDATE categories
		SET name = $3, color = $4, budget = $5, last_updated_at = $6
		WHERE category_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.UserID,
		modelCat.Name,
		modelCat.Color,
		modelCat.Budget,
		modelCat.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", modelCat.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category. Transactions keep their category_id
// reference; deletion fails while referencing transactions exist.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE category_id = $1 AND user_id = $2;`,
		categoryID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Foreign key violation
			return fmt.Errorf("%w: category %s is referenced by transactions", apperrors.ErrInvalidState, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
