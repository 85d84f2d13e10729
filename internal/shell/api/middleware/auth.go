// Package middleware provides HTTP middleware for the Garden API.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gardenhq/gardenapi/internal/core/auth"
)

// =============================================================================
// Auth Configuration
// =============================================================================

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	// Tokens verifies bearer tokens presented by clients.
	Tokens *auth.TokenIssuer

	// Logger for auth middleware logging.
	Logger *slog.Logger
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware extracts the caller identity from the Authorization
// header and stores it in the request context. Requests without a token
// pass through unauthenticated; protected routes reject them via
// RequireAuth.
type AuthMiddleware struct {
	config AuthConfig
}

// NewAuthMiddleware creates a new auth middleware with the given config.
func NewAuthMiddleware(cfg AuthConfig) *AuthMiddleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AuthMiddleware{config: cfg}
}

// Handler returns the middleware handler function.
// A malformed or expired token is rejected outright rather than treated
// as anonymous, so a client with a bad token gets a clear 401 even on
// routes that would otherwise allow unauthenticated access.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "Invalid or missing JWT")
			return
		}

		userID, err := m.config.Tokens.Verify(tokenString)
		if err != nil {
			m.config.Logger.Warn("token verification failed",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
				"error", err,
			)
			writeJSONError(w, http.StatusUnauthorized, "Invalid or missing JWT")
			return
		}

		ctx := auth.Context{UserID: userID, Authenticated: true}
		r = r.WithContext(auth.WithContext(r.Context(), ctx))

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Require Auth Middleware
// =============================================================================

// RequireAuth wraps a handler so it rejects unauthenticated requests.
// Must be used AFTER AuthMiddleware.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := auth.FromContext(r.Context())
		if !ctx.Authenticated {
			writeJSONError(w, http.StatusUnauthorized, "Invalid or missing JWT")
			return
		}
		next(w, r)
	}
}

// =============================================================================
// JSON Error Response
// =============================================================================

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
