package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/stretchr/testify/require"
)

type mockRecipeRepo struct {
	InsertRecipeFunc           func(ctx context.Context, recipe *models.Recipe) (int64, error)
	InsertRecipeIngredientFunc func(ctx context.Context, link *models.RecipeIngredient) error
	AttachCategoryFunc         func(ctx context.Context, recipeID, categoryID int64) error
	GetRecipeViewFunc          func(ctx context.Context, id int64) (*models.RecipeView, error)
	ListRecipeViewsFunc        func(ctx context.Context) ([]models.RecipeView, error)
}

func (m *mockRecipeRepo) InsertRecipe(ctx context.Context, recipe *models.Recipe) (int64, error) {
	return m.InsertRecipeFunc(ctx, recipe)
}
func (m *mockRecipeRepo) InsertRecipeIngredient(ctx context.Context, link *models.RecipeIngredient) error {
	return m.InsertRecipeIngredientFunc(ctx, link)
}
func (m *mockRecipeRepo) AttachCategory(ctx context.Context, recipeID, categoryID int64) error {
	return m.AttachCategoryFunc(ctx, recipeID, categoryID)
}
func (m *mockRecipeRepo) GetRecipeView(ctx context.Context, id int64) (*models.RecipeView, error) {
	return m.GetRecipeViewFunc(ctx, id)
}
func (m *mockRecipeRepo) ListRecipeViews(ctx context.Context) ([]models.RecipeView, error) {
	return m.ListRecipeViewsFunc(ctx)
}

func TestCreateRecipe_DuplicateLinesShareOneCatalogRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	catalog := newMemCatalogRepo()
	catalog.units["pcs"] = &models.Unit{ID: 1, Name: "pieces", Abbreviation: "pcs"}

	var links []models.RecipeIngredient
	recipes := &mockRecipeRepo{
		InsertRecipeFunc: func(ctx context.Context, recipe *models.Recipe) (int64, error) {
			require.Equal(t, int64(7), recipe.UserID)
			require.Equal(t, recipe.CreatedAt, recipe.UpdatedAt)
			return 42, nil
		},
		InsertRecipeIngredientFunc: func(ctx context.Context, link *models.RecipeIngredient) error {
			links = append(links, *link)
			return nil
		},
		GetRecipeViewFunc: func(ctx context.Context, id int64) (*models.RecipeView, error) {
			require.Equal(t, int64(42), id)
			return &models.RecipeView{RecipeID: id, Name: "Omelette"}, nil
		},
	}

	svc := NewRecipeService(db, &fakeManager{catalog: catalog, recipes: recipes})

	view, err := svc.Create(context.Background(), 7, models.RecipeInput{
		Name: "Omelette",
		Ingredients: []models.IngredientLineInput{
			{Name: "Egg", Quantity: 2, Unit: "pcs"},
			{Name: "egg", Quantity: 1, Unit: "pcs"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), view.RecipeID)

	// Two distinct lines, one shared catalog row.
	require.Len(t, links, 2)
	require.Equal(t, links[0].IngredientID, links[1].IngredientID)
	require.Equal(t, 2.0, links[0].Quantity)
	require.Equal(t, 1.0, links[1].Quantity)
	require.Equal(t, 1, catalog.inserts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRecipe_UnknownCategorySkipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	catalog := newMemCatalogRepo()
	catalog.categories[1] = &models.Category{ID: 1, Name: "Breakfast"}

	var attached []int64
	recipes := &mockRecipeRepo{
		InsertRecipeFunc: func(ctx context.Context, recipe *models.Recipe) (int64, error) { return 42, nil },
		InsertRecipeIngredientFunc: func(ctx context.Context, link *models.RecipeIngredient) error {
			return nil
		},
		AttachCategoryFunc: func(ctx context.Context, recipeID, categoryID int64) error {
			attached = append(attached, categoryID)
			return nil
		},
		GetRecipeViewFunc: func(ctx context.Context, id int64) (*models.RecipeView, error) {
			return &models.RecipeView{RecipeID: id}, nil
		},
	}

	svc := NewRecipeService(db, &fakeManager{catalog: catalog, recipes: recipes})

	_, err = svc.Create(context.Background(), 7, models.RecipeInput{
		Name:        "Toast",
		Ingredients: []models.IngredientLineInput{{Name: "Bread", Quantity: 2}},
		CategoryIDs: []int64{1, 99},
	})
	require.NoError(t, err)

	// The stale id 99 is skipped silently; only the known category links.
	require.Equal(t, []int64{1}, attached)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRecipe_LineFailureRollsBackEverything(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	recipes := &mockRecipeRepo{
		InsertRecipeFunc: func(ctx context.Context, recipe *models.Recipe) (int64, error) { return 42, nil },
		InsertRecipeIngredientFunc: func(ctx context.Context, link *models.RecipeIngredient) error {
			calls++
			if calls == 2 {
				return errors.New("insert failed")
			}
			return nil
		},
	}

	svc := NewRecipeService(db, &fakeManager{catalog: newMemCatalogRepo(), recipes: recipes})

	_, err = svc.Create(context.Background(), 7, models.RecipeInput{
		Name: "Omelette",
		Ingredients: []models.IngredientLineInput{
			{Name: "Egg", Quantity: 3},
			{Name: "Butter", Quantity: 1},
		},
	})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRecipe_EmptyLineNameFailsValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	recipes := &mockRecipeRepo{
		InsertRecipeFunc: func(ctx context.Context, recipe *models.Recipe) (int64, error) { return 42, nil },
	}
	svc := NewRecipeService(db, &fakeManager{catalog: newMemCatalogRepo(), recipes: recipes})

	_, err = svc.Create(context.Background(), 7, models.RecipeInput{
		Name:        "Mystery",
		Ingredients: []models.IngredientLineInput{{Name: "   ", Quantity: 1}},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_PassesThrough(t *testing.T) {
	recipes := &mockRecipeRepo{
		GetRecipeViewFunc: func(ctx context.Context, id int64) (*models.RecipeView, error) {
			if id != 42 {
				return nil, apperr.ErrNotFound
			}
			return &models.RecipeView{RecipeID: 42, Name: "Omelette"}, nil
		},
	}
	svc := NewRecipeService(nil, &fakeManager{recipes: recipes})

	view, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Omelette", view.Name)

	_, err = svc.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestList_PassesThrough(t *testing.T) {
	recipes := &mockRecipeRepo{
		ListRecipeViewsFunc: func(ctx context.Context) ([]models.RecipeView, error) {
			return []models.RecipeView{{RecipeID: 1}, {RecipeID: 2}}, nil
		},
	}
	svc := NewRecipeService(nil, &fakeManager{recipes: recipes})

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
}
