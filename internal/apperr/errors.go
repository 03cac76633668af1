// Package apperr defines shared sentinel errors used across the service
// and handler layers. Callers should use errors.Is to match these values.
package apperr

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registration conflicts; email is checked before username.
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials deliberately carries the same message for an
	// unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation errors on identity-critical input.
	ErrValidation = errors.New("validation error")

	// Token errors surfaced by the auth middleware.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
