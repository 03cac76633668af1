package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkoroteev/recipecart/internal/dbx"
	"github.com/dkoroteev/recipecart/internal/models"
)

// CatalogRepository defines persistence for the shared ingredient/unit
// catalog and the category reference table.
type CatalogRepository interface {
	// FindIngredientByNormalizedName fetches a catalog entry by its
	// normalized name. Returns nil (no error) on a miss.
	FindIngredientByNormalizedName(ctx context.Context, normalized string) (*models.Ingredient, error)
	// InsertIngredientIfAbsent inserts a catalog entry keyed by
	// normalized name. It returns the new id and true, or 0 and false
	// when a concurrent insert won the race.
	InsertIngredientIfAbsent(ctx context.Context, ing *models.Ingredient) (int64, bool, error)
	// FindUnit fetches a unit matching the given string against its name
	// or abbreviation, case-insensitively. Returns nil (no error) on a miss.
	FindUnit(ctx context.Context, name string) (*models.Unit, error)
	// GetCategory fetches a category by id. Returns nil (no error) on a miss.
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
}

// PostgresCatalogRepository implements CatalogRepository on PostgreSQL.
type PostgresCatalogRepository struct {
	db dbx.DBTX
}

// NewPostgresCatalogRepository binds a catalog repository to the given handle.
func NewPostgresCatalogRepository(db dbx.DBTX) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// FindIngredientByNormalizedName looks up one catalog entry by normalized
// name. The unique index guarantees at most one row.
func (r *PostgresCatalogRepository) FindIngredientByNormalizedName(ctx context.Context, normalized string) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := r.db.QueryRowContext(ctx, `
		SELECT ingredient_id, name, name_normalized, category
		FROM ingredients WHERE name_normalized = $1
	`, normalized).Scan(&ing.ID, &ing.Name, &ing.NameNormalized, &ing.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return &ing, nil
}

// InsertIngredientIfAbsent performs an atomic insert-if-absent keyed by
// the normalized name, so two requests introducing the same new
// ingredient concurrently still end up with a single catalog row.
func (r *PostgresCatalogRepository) InsertIngredientIfAbsent(ctx context.Context, ing *models.Ingredient) (int64, bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ingredients (name, name_normalized, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (name_normalized) DO NOTHING
		RETURNING ingredient_id
	`, ing.Name, ing.NameNormalized, ing.Category).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("insert ingredient: %w", err)
	}
	return id, true, nil
}

// FindUnit matches a unit by full name or abbreviation. Units are never
// created here; the vocabulary is curated.
func (r *PostgresCatalogRepository) FindUnit(ctx context.Context, name string) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.QueryRowContext(ctx, `
		SELECT unit_id, name, abbreviation
		FROM units WHERE LOWER(name) = $1 OR LOWER(abbreviation) = $1
	`, name).Scan(&unit.ID, &unit.Name, &unit.Abbreviation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unit: %w", err)
	}
	return &unit, nil
}

// GetCategory fetches a category row by id.
func (r *PostgresCatalogRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT category_id, name FROM categories WHERE category_id = $1
	`, id).Scan(&cat.ID, &cat.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}
