// Package repository provides PostgreSQL persistence for users, the
// ingredient/unit catalog, and recipes. Every repository is bound to a
// dbx.DBTX so callers can run it against the pool or a transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/dbx"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/lib/pq"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// UsernameExists returns true if a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// CreateUser inserts the user and fills in its ID and CreatedAt.
	// Uniqueness violations map to apperr.ErrEmailExists or
	// apperr.ErrUsernameExists.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail fetches a user by email, or apperr.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostgresUserRepository implements UserRepository on PostgreSQL.
type PostgresUserRepository struct {
	db dbx.DBTX
}

// NewPostgresUserRepository binds a user repository to the given handle.
func NewPostgresUserRepository(db dbx.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// EmailExists checks whether a user with the specified email exists.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// UsernameExists checks whether a user with the specified username exists.
func (r *PostgresUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user row. The unique indexes on email and
// username settle registration races the existence checks cannot see.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at
	`, user.Username, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_username_key" {
				return nil, apperr.ErrUsernameExists
			}
			return nil, apperr.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail fetches a single user by email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, email, password_hash, created_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}
