package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/dkoroteev/recipecart/internal/repository"
)

// CatalogResolver resolves free-text ingredient and unit names against
// the shared catalog. Ingredients are created on a true miss; units are
// never created here.
type CatalogResolver struct {
	repo repository.CatalogRepository
}

// NewCatalogResolver constructs a resolver over the given catalog
// repository, which may be bound to a transaction.
func NewCatalogResolver(repo repository.CatalogRepository) *CatalogResolver {
	return &CatalogResolver{repo: repo}
}

// ResolveIngredient returns the id of the catalog entry matching the
// given name case-insensitively, creating the entry on a miss. The
// category is only stored when a brand-new entry is created; an existing
// entry keeps its category. Matching is exact on the normalized name.
func (r *CatalogResolver) ResolveIngredient(ctx context.Context, name, category string) (int64, error) {
	display := strings.TrimSpace(name)
	normalized := strings.ToLower(display)
	if normalized == "" {
		return 0, fmt.Errorf("%w: ingredient name is empty", apperr.ErrValidation)
	}

	ing, err := r.repo.FindIngredientByNormalizedName(ctx, normalized)
	if err != nil {
		return 0, err
	}
	if ing != nil {
		return ing.ID, nil
	}

	id, inserted, err := r.repo.InsertIngredientIfAbsent(ctx, &models.Ingredient{
		Name:           display,
		NameNormalized: normalized,
		Category:       category,
	})
	if err != nil {
		return 0, err
	}
	if inserted {
		return id, nil
	}

	// A concurrent request created the entry between the lookup and the
	// insert; the unique index turned our insert into a no-op.
	ing, err = r.repo.FindIngredientByNormalizedName(ctx, normalized)
	if err != nil {
		return 0, err
	}
	if ing == nil {
		return 0, fmt.Errorf("resolve ingredient %q: entry vanished after conflict", normalized)
	}
	return ing.ID, nil
}

// ResolveUnit matches the given string against unit names and
// abbreviations, case-insensitively. A miss or an empty input yields
// nil, not an error: "no unit" is a valid line state.
func (r *CatalogResolver) ResolveUnit(ctx context.Context, name string) (*int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, nil
	}

	unit, err := r.repo.FindUnit(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return &unit.ID, nil
}
