package http

import (
	"net/http"

	"github.com/dkoroteev/recipecart/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the API.
// It applies JSON content-type enforcement and request logging to every
// route, and bearer-token authentication to the recipe routes.
//
// Routes:
//
//	POST /api/auth/register → authHandler.Register
//	POST /api/auth/login    → authHandler.Login
//	GET  /api/recipes       → recipeHandler.List      (protected)
//	POST /api/recipes       → recipeHandler.Create    (protected)
//	GET  /api/recipes/{id}  → recipeHandler.GetByID   (protected)
func NewRouter(
	authHandler *AuthHandler,
	recipeHandler *RecipeHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))
			r.Get("/recipes", recipeHandler.List)
			r.Post("/recipes", recipeHandler.Create)
			r.Get("/recipes/{id}", recipeHandler.GetByID)
		})
	})

	return r
}
