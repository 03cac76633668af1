// Package http provides the HTTP boundary of the service: request
// decoding and validation, status-code mapping, and routing.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkoroteev/recipecart/internal/models"
)

// AuthService defines the credential operations required by the HTTP
// handlers.
type AuthService interface {
	// Register creates a new user and returns its public fields plus a token.
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	// Login verifies credentials and returns public fields plus a token.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	// AuthService performs the underlying credential operations.
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty username, email, and password.
// Conflicts on either field yield 409 naming the field; the email
// conflict wins when both apply.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Login handles login requests. A failed login never reveals whether
// the email or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
