// Package auth provides authentication context, identity tokens, password
// hashing, and authorization predicates.
package auth

import (
	"context"
)

// =============================================================================
// Context Key
// =============================================================================

type contextKey string

const authContextKey contextKey = "auth"

// =============================================================================
// Types
// =============================================================================

// Context represents the authentication context for a request. It carries
// only the caller's identity; role and ownership are resolved fresh from
// the store on every request, so permission changes take effect
// immediately.
type Context struct {
	// UserID is the integer PK from the users table, resolved from the
	// bearer token's subject claim.
	UserID int

	// Authenticated indicates whether a valid bearer token was presented.
	Authenticated bool
}

// =============================================================================
// Context Storage
// =============================================================================

// WithContext returns a new context with the auth context attached.
func WithContext(ctx context.Context, authCtx Context) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

// FromContext extracts the auth context from a context.
// Returns an unauthenticated context if none is present.
func FromContext(ctx context.Context) Context {
	if authCtx, ok := ctx.Value(authContextKey).(Context); ok {
		return authCtx
	}
	return Context{}
}
