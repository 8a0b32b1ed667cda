package http

import (
	"context"

	"carrental-backend/internal/listing"
)

type scopeKey struct{}

func contextWithScope(ctx context.Context, scope listing.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the caller scope set by the auth middleware.
func ScopeFromContext(ctx context.Context) (listing.Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(listing.Scope)
	return scope, ok
}
