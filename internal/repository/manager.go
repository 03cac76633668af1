package repository

import "github.com/dkoroteev/recipecart/internal/dbx"

// Manager vends repositories bound to a specific database handle, so a
// service can run a group of operations against the pool or against a
// single transaction.
type Manager interface {
	Users(db dbx.DBTX) UserRepository
	Catalog(db dbx.DBTX) CatalogRepository
	Recipes(db dbx.DBTX) RecipeRepository
}

// PostgresManager vends the PostgreSQL repository implementations.
type PostgresManager struct{}

// NewPostgresManager constructs a PostgreSQL-backed Manager.
func NewPostgresManager() *PostgresManager {
	return &PostgresManager{}
}

// Users returns a UserRepository bound to the provided handle.
func (m *PostgresManager) Users(db dbx.DBTX) UserRepository {
	return NewPostgresUserRepository(db)
}

// Catalog returns a CatalogRepository bound to the provided handle.
func (m *PostgresManager) Catalog(db dbx.DBTX) CatalogRepository {
	return NewPostgresCatalogRepository(db)
}

// Recipes returns a RecipeRepository bound to the provided handle.
func (m *PostgresManager) Recipes(db dbx.DBTX) RecipeRepository {
	return NewPostgresRecipeRepository(db)
}
