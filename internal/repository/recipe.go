package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/dbx"
	"github.com/dkoroteev/recipecart/internal/models"
)

// RecipeRepository defines persistence for recipe headers, their
// ingredient lines, and category links.
type RecipeRepository interface {
	// InsertRecipe persists a recipe header and returns its id.
	InsertRecipe(ctx context.Context, recipe *models.Recipe) (int64, error)
	// InsertRecipeIngredient persists one ingredient line. Lines are
	// deliberately not unique per (recipe, ingredient): a recipe may
	// repeat an ingredient with different quantities or units.
	InsertRecipeIngredient(ctx context.Context, link *models.RecipeIngredient) error
	// AttachCategory links an existing category to a recipe.
	AttachCategory(ctx context.Context, recipeID, categoryID int64) error
	// GetRecipeView reads the denormalized projection of one recipe,
	// or apperr.ErrNotFound.
	GetRecipeView(ctx context.Context, id int64) (*models.RecipeView, error)
	// ListRecipeViews reads the denormalized projection of all recipes.
	ListRecipeViews(ctx context.Context) ([]models.RecipeView, error)
}

// PostgresRecipeRepository implements RecipeRepository on PostgreSQL.
type PostgresRecipeRepository struct {
	db dbx.DBTX
}

// NewPostgresRecipeRepository binds a recipe repository to the given handle.
func NewPostgresRecipeRepository(db dbx.DBTX) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

// InsertRecipe persists the header row.
func (r *PostgresRecipeRepository) InsertRecipe(ctx context.Context, recipe *models.Recipe) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO recipes (user_id, name, description, prep_time, cook_time, servings, instructions, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING recipe_id
	`, recipe.UserID, recipe.Name, recipe.Description, recipe.PrepTime, recipe.CookTime,
		recipe.Servings, recipe.Instructions, recipe.ImageURL, recipe.CreatedAt, recipe.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

// InsertRecipeIngredient persists one line item.
func (r *PostgresRecipeRepository) InsertRecipeIngredient(ctx context.Context, link *models.RecipeIngredient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, unit_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)
	`, link.RecipeID, link.IngredientID, link.UnitID, link.Quantity, link.Notes)
	if err != nil {
		return fmt.Errorf("insert recipe ingredient: %w", err)
	}
	return nil
}

// AttachCategory links the recipe to a category.
func (r *PostgresRecipeRepository) AttachCategory(ctx context.Context, recipeID, categoryID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipe_categories (recipe_id, category_id) VALUES ($1, $2)
	`, recipeID, categoryID)
	if err != nil {
		return fmt.Errorf("attach category: %w", err)
	}
	return nil
}

// GetRecipeView reads one recipe joined with its catalog rows and categories.
func (r *PostgresRecipeRepository) GetRecipeView(ctx context.Context, id int64) (*models.RecipeView, error) {
	var view models.RecipeView
	err := r.db.QueryRowContext(ctx, `
		SELECT recipe_id, user_id, name, description, prep_time, cook_time, servings, instructions, image_url, created_at, updated_at
		FROM recipes WHERE recipe_id = $1
	`, id).Scan(&view.RecipeID, &view.UserID, &view.Name, &view.Description, &view.PrepTime,
		&view.CookTime, &view.Servings, &view.Instructions, &view.ImageURL, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := r.fillIngredients(ctx, &view); err != nil {
		return nil, err
	}
	if err := r.fillCategories(ctx, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListRecipeViews reads the projection of every recipe.
func (r *PostgresRecipeRepository) ListRecipeViews(ctx context.Context) ([]models.RecipeView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT recipe_id, user_id, name, description, prep_time, cook_time, servings, instructions, image_url, created_at, updated_at
		FROM recipes ORDER BY recipe_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	views := make([]models.RecipeView, 0)
	for rows.Next() {
		var view models.RecipeView
		if err := rows.Scan(&view.RecipeID, &view.UserID, &view.Name, &view.Description, &view.PrepTime,
			&view.CookTime, &view.Servings, &view.Instructions, &view.ImageURL, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	for i := range views {
		if err := r.fillIngredients(ctx, &views[i]); err != nil {
			return nil, err
		}
		if err := r.fillCategories(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (r *PostgresRecipeRepository) fillIngredients(ctx context.Context, view *models.RecipeView) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ri.ingredient_id, i.name, i.category, ri.quantity, COALESCE(u.abbreviation, ''), ri.notes
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.ingredient_id = ri.ingredient_id
		LEFT JOIN units u ON u.unit_id = ri.unit_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.recipe_ingredient_id
	`, view.RecipeID)
	if err != nil {
		return fmt.Errorf("get recipe ingredients: %w", err)
	}
	defer rows.Close()

	view.Ingredients = make([]models.IngredientLineView, 0)
	for rows.Next() {
		var line models.IngredientLineView
		if err := rows.Scan(&line.IngredientID, &line.Name, &line.Category, &line.Quantity, &line.Unit, &line.Notes); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		view.Ingredients = append(view.Ingredients, line)
	}
	return rows.Err()
}

func (r *PostgresRecipeRepository) fillCategories(ctx context.Context, view *models.RecipeView) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.category_id, c.name
		FROM recipe_categories rc
		JOIN categories c ON c.category_id = rc.category_id
		WHERE rc.recipe_id = $1
		ORDER BY c.category_id
	`, view.RecipeID)
	if err != nil {
		return fmt.Errorf("get recipe categories: %w", err)
	}
	defer rows.Close()

	view.Categories = make([]models.Category, 0)
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return fmt.Errorf("scan recipe category: %w", err)
		}
		view.Categories = append(view.Categories, cat)
	}
	return rows.Err()
}
