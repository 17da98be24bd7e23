package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetin-app/budgetin_backend/internal/apperrors"
	"github.com/budgetin-app/budgetin_backend/internal/core/domain"
	portsrepo "github.com/budgetin-app/budgetin_backend/internal/core/ports/repositories"
	"github.com/budgetin-app/budgetin_backend/internal/models"
	"github.com/budgetin-app/budgetin_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, flow_type, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.FlowType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category. The table carries a unique constraint
// on (name, flow_type), so the same name may exist once per flow direction.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.Name,
		modelCat.FlowType,
		modelCat.CreatedAt,
		modelCat.CreatedBy,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category %q already exists for flow type %s", apperrors.ErrDuplicate, modelCat.Name, modelCat.FlowType)
		}
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1;
	`
	modelCat, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	domainCat := mapping.ToDomainCategory(modelCat)
	return &domainCat, nil
}

// ListCategories retrieves all categories, optionally filtered by flow type.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, flowType *domain.FlowType) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
	`
	args := []any{}
	if flowType != nil {
		query += ` WHERE flow_type = $1`
		args = append(args, string(*flowType))
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		modelCat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(modelCat))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return categories, nil
}
