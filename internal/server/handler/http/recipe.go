package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkoroteev/recipecart/internal/middleware"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/go-chi/chi/v5"
)

// RecipeService defines the recipe operations required by the HTTP
// handlers.
type RecipeService interface {
	// Create aggregates and persists a recipe for the given owner.
	Create(ctx context.Context, ownerID int64, input models.RecipeInput) (*models.RecipeView, error)
	// GetByID returns one recipe view or apperr.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.RecipeView, error)
	// List returns all recipe views.
	List(ctx context.Context) ([]models.RecipeView, error)
}

// RecipeHandler handles HTTP requests for recipe creation and reads.
type RecipeHandler struct {
	// RecipeService performs the underlying recipe operations.
	RecipeService RecipeService
}

// Create handles recipe creation. The owner is the authenticated user
// from the request context, never a field of the payload.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if msg := validateRecipeInput(&input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	view, err := h.RecipeService.Create(r.Context(), ownerID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetByID handles single-recipe reads.
func (h *RecipeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	view, err := h.RecipeService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// List handles reads of all recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.RecipeService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// validateRecipeInput checks the caller-boundary preconditions of the
// aggregation contract. Returns an empty string when the input is valid.
func validateRecipeInput(input *models.RecipeInput) string {
	if strings.TrimSpace(input.Name) == "" {
		return "recipe name is required"
	}
	if len(input.Ingredients) == 0 {
		return "at least one ingredient is required"
	}
	for _, line := range input.Ingredients {
		if strings.TrimSpace(line.Name) == "" {
			return "ingredient name is required"
		}
		if line.Quantity < 0 {
			return "ingredient quantity must not be negative"
		}
	}
	if input.PrepTime != nil && *input.PrepTime < 0 {
		return "prep time must not be negative"
	}
	if input.CookTime != nil && *input.CookTime < 0 {
		return "cook time must not be negative"
	}
	if input.Servings != nil && *input.Servings <= 0 {
		return "servings must be positive"
	}
	return ""
}
