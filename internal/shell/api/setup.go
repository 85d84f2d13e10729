// Package api provides the HTTP surface of the Garden API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/shell/api/middleware"
	"github.com/gardenhq/gardenapi/internal/shell/api/openapi"
	"github.com/gardenhq/gardenapi/internal/shell/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// =============================================================================
// API Setup
// =============================================================================

// APIConfig holds configuration for the API setup.
type APIConfig struct {
	Store  store.Store
	Tokens *auth.TokenIssuer
	Logger *slog.Logger
}

// SetupAPI creates the complete API router.
// Returns an http.Handler that can be used as the server's main handler.
func SetupAPI(cfg APIConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(recoveryMiddleware(cfg.Logger))

	authMW := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Tokens: cfg.Tokens,
		Logger: cfg.Logger,
	})
	router.Use(authMW.Handler)

	router.HandleFunc("/", welcomeHandler).Methods("GET")
	router.HandleFunc("/health", healthHandler).Methods("GET")

	authHandlers := NewAuthHandlers(cfg.Store, cfg.Tokens, cfg.Logger)
	authHandlers.RegisterRoutes(router)

	gardenHandlers := NewGardenHandlers(cfg.Store, cfg.Logger)
	gardenHandlers.RegisterRoutes(router)

	plantHandlers := NewPlantHandlers(cfg.Store, cfg.Logger)
	plantHandlers.RegisterRoutes(router)

	gardenPlantHandlers := NewGardenPlantHandlers(cfg.Store, cfg.Logger)
	gardenPlantHandlers.RegisterRoutes(router)

	commentHandlers := NewCommentHandlers(cfg.Store, cfg.Logger)
	commentHandlers.RegisterRoutes(router)

	router.HandleFunc("/openapi.json", newOpenAPIGenerator().Handler()).Methods("GET")

	return router
}

// newOpenAPIGenerator registers every resource for spec generation.
func newOpenAPIGenerator() *openapi.Generator {
	gen := openapi.NewGenerator(
		openapi.WithTitle("Garden API"),
		openapi.WithVersion("1.0.0"),
		openapi.WithDescription("Virtual garden management API with user accounts, gardens, a shared plant catalog, plant placements, and comments"),
		openapi.WithServer("/"),
	)

	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "users",
		BasePath:       "/auth/user",
		Model:          userView{},
		RequiresAuth:   true,
		SupportsList:   true,
		SupportsGet:    true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "gardens",
		BasePath:       "/garden",
		Model:          gardenView{},
		SupportsList:   true,
		SupportsGet:    true,
		SupportsCreate: true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "plants",
		BasePath:       "/plant",
		Model:          plantView{},
		SupportsList:   true,
		SupportsGet:    true,
		SupportsCreate: true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "garden_plants",
		BasePath:       "/garden/{gardenId}/garden_plant",
		Model:          gardenPlantView{},
		RequiresAuth:   true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "comments",
		BasePath:       "/garden/{gardenId}/comment",
		Model:          commentView{},
		RequiresAuth:   true,
		SupportsList:   true,
		SupportsCreate: true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})

	return gen
}

// =============================================================================
// Middleware
// =============================================================================

// requestIDMiddleware generates and adds a request ID to responses.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware recovers from panics and returns a 500 error.
func recoveryMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "path", r.URL.Path)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "An unexpected error occurred",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// =============================================================================
// Root Handlers
// =============================================================================

func welcomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Virtual Garden API! Create your dream garden with ease",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
