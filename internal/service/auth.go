// Package service holds the business logic: credential issuance and
// verification, catalog resolution, and recipe aggregation. Persistence
// is delegated to repository interfaces.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/dkoroteev/recipecart/internal/models"
	"github.com/dkoroteev/recipecart/internal/repository"
)

// saltLength is the number of random bytes used as the HMAC key for
// each password hash.
const saltLength = 64

// TokenIssuer mints signed bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, username, email string) (string, error)
}

// AuthService registers users, verifies login credentials, and issues
// bearer tokens.
type AuthService struct {
	db     *sql.DB
	repos  repository.Manager
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided database
// handle, repository manager, and token issuer.
func NewAuthService(db *sql.DB, repos repository.Manager, tokens TokenIssuer) *AuthService {
	return &AuthService{db: db, repos: repos, tokens: tokens}
}

// Register creates a new user with a salted password hash and returns
// its public fields plus a signed token. The email conflict is checked
// before the username conflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", apperr.ErrValidation)
	}

	repo := s.repos.Users(s.db)

	exists, err := repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperr.ErrEmailExists
	}

	exists, err = repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, apperr.ErrUsernameExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// Login verifies the email/password pair and returns the user's public
// fields plus a signed token. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.repos.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &models.AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// hashPassword derives a fresh random salt and returns
// base64(salt) + ":" + base64(HMAC-SHA512(key=salt, password)).
func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(sum), nil
}

// verifyPassword recomputes the stored hash with the stored salt and
// compares the two in constant time.
func verifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), want)
}
