package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkoroteev/recipecart/internal/dbx"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/dkoroteev/recipecart/internal/repository"
)

// RecipeService assembles multi-entity recipe records: the header, its
// ingredient lines resolved through the catalog, and its category links.
type RecipeService struct {
	db    *sql.DB
	repos repository.Manager
}

// NewRecipeService constructs a RecipeService using the provided
// database handle and repository manager.
func NewRecipeService(db *sql.DB, repos repository.Manager) *RecipeService {
	return &RecipeService{db: db, repos: repos}
}

// Create persists a recipe for the given owner and returns the
// denormalized view. The whole aggregation runs in one transaction, so a
// failure on any step leaves no partial recipe behind.
func (s *RecipeService) Create(ctx context.Context, ownerID int64, input models.RecipeInput) (*models.RecipeView, error) {
	now := time.Now().UTC()

	var view *models.RecipeView
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		recipes := s.repos.Recipes(tx)
		catalog := s.repos.Catalog(tx)
		resolver := NewCatalogResolver(catalog)

		recipeID, err := recipes.InsertRecipe(ctx, &models.Recipe{
			UserID:       ownerID,
			Name:         input.Name,
			Description:  input.Description,
			PrepTime:     input.PrepTime,
			CookTime:     input.CookTime,
			Servings:     input.Servings,
			Instructions: input.Instructions,
			ImageURL:     input.ImageURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		for _, line := range input.Ingredients {
			ingredientID, err := resolver.ResolveIngredient(ctx, line.Name, line.Category)
			if err != nil {
				return err
			}
			unitID, err := resolver.ResolveUnit(ctx, line.Unit)
			if err != nil {
				return err
			}
			if err := recipes.InsertRecipeIngredient(ctx, &models.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: ingredientID,
				UnitID:       unitID,
				Quantity:     line.Quantity,
				Notes:        line.Notes,
			}); err != nil {
				return err
			}
		}

		for _, categoryID := range input.CategoryIDs {
			cat, err := catalog.GetCategory(ctx, categoryID)
			if err != nil {
				return err
			}
			if cat == nil {
				// Stale client-supplied id; skip silently.
				continue
			}
			if err := recipes.AttachCategory(ctx, recipeID, categoryID); err != nil {
				return err
			}
		}

		view, err = recipes.GetRecipeView(ctx, recipeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetByID returns the denormalized view of one recipe, or
// apperr.ErrNotFound.
func (s *RecipeService) GetByID(ctx context.Context, id int64) (*models.RecipeView, error) {
	return s.repos.Recipes(s.db).GetRecipeView(ctx, id)
}

// List returns the denormalized views of all recipes.
func (s *RecipeService) List(ctx context.Context) ([]models.RecipeView, error) {
	return s.repos.Recipes(s.db).ListRecipeViews(ctx)
}
