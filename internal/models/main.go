// Package models defines the core data structures for users, recipes,
// and the shared ingredient/unit catalog.
package models

import "time"

// User represents a registered account with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Username is the login name chosen by the user.
	Username string
	// Email is the unique email address of the user.
	Email string
	// PasswordHash stores the salted password hash in the form
	// base64(salt) + ":" + base64(hash).
	PasswordHash string
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time
}

// Recipe is the recipe header row owned by a user.
type Recipe struct {
	ID           int64
	UserID       int64
	Name         string
	Description  string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Instructions string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ingredient is a shared catalog entry, unique by normalized name.
type Ingredient struct {
	ID int64
	// Name is the display name as first typed by a user.
	Name string
	// NameNormalized is the lowercased, trimmed form used for matching.
	NameNormalized string
	// Category is an optional default category assigned when the
	// catalog entry was first created.
	Category string
}

// Unit is a curated reference entry; the server never writes to this table.
type Unit struct {
	ID           int64
	Name         string
	Abbreviation string
}

// RecipeIngredient links one recipe line to a catalog ingredient.
// A recipe may carry several lines for the same ingredient.
type RecipeIngredient struct {
	RecipeID     int64
	IngredientID int64
	// UnitID is nil when the line has no resolvable unit.
	UnitID   *int64
	Quantity float64
	Notes    string
}

// Category is a pre-existing reference entry recipes can be tagged with.
type Category struct {
	ID   int64  `json:"categoryId"`
	Name string `json:"name"`
}

// IngredientLineInput is one ingredient entry of a recipe submission.
type IngredientLineInput struct {
	// Name is the free-text ingredient name; must be non-empty.
	Name string `json:"name"`
	// Quantity is a non-negative decimal amount.
	Quantity float64 `json:"quantity"`
	// Unit is an optional free-text unit name or abbreviation.
	Unit string `json:"unit,omitempty"`
	// Notes holds optional free-text notes for the line.
	Notes string `json:"notes,omitempty"`
	// Category optionally sets the default category when the line
	// introduces a brand-new catalog ingredient.
	Category string `json:"category,omitempty"`
}

// RecipeInput is the payload for creating a recipe.
type RecipeInput struct {
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	PrepTime     *int                  `json:"prepTime,omitempty"`
	CookTime     *int                  `json:"cookTime,omitempty"`
	Servings     *int                  `json:"servings,omitempty"`
	Instructions string                `json:"instructions,omitempty"`
	ImageURL     string                `json:"imageUrl,omitempty"`
	Ingredients  []IngredientLineInput `json:"ingredients"`
	CategoryIDs  []int64               `json:"categoryIds"`
}

// IngredientLineView is a resolved recipe line joined with catalog rows.
type IngredientLineView struct {
	IngredientID int64   `json:"ingredientId"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// RecipeView is the denormalized projection returned by recipe reads.
type RecipeView struct {
	RecipeID     int64                `json:"recipeId"`
	UserID       int64                `json:"userId"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	PrepTime     *int                 `json:"prepTime,omitempty"`
	CookTime     *int                 `json:"cookTime,omitempty"`
	Servings     *int                 `json:"servings,omitempty"`
	Instructions string               `json:"instructions,omitempty"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Ingredients  []IngredientLineView `json:"ingredients"`
	Categories   []Category           `json:"categories"`
}

// AuthResponse is returned by both registration and login.
type AuthResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}
