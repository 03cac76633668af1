// Package main initializes and starts the RecipeCart API server,
// setting up configuration, logging, the database connection with
// migrations, repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/dkoroteev/recipecart/internal/auth"
	"github.com/dkoroteev/recipecart/internal/config"
	"github.com/dkoroteev/recipecart/internal/db"
	"github.com/dkoroteev/recipecart/internal/logger"
	"github.com/dkoroteev/recipecart/internal/repository"
	"github.com/dkoroteev/recipecart/internal/server/handler/http"
	"github.com/dkoroteev/recipecart/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is not configured")
	}

	// Initialize PostgreSQL and bring the schema up to date.
	database, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Repository manager vending pool- or transaction-bound repositories.
	repos := repository.NewPostgresManager()

	// Token issuer holding the server's symmetric signing key.
	tokens := auth.NewTokenIssuer([]byte(options.JWTSecret), options.JWTIssuer, options.JWTAudience)

	// Initialize business-logic services.
	authService := service.NewAuthService(database, repos, tokens)
	recipeService := service.NewRecipeService(database, repos)

	// Create HTTP handlers for auth and recipe endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	recipeHandler := &http.RecipeHandler{RecipeService: recipeService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, recipeHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
