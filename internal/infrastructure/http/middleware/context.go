package middleware

import (
	"context"

	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the verified identity into the context.
func WithIdentity(ctx context.Context, id *domain.VerifiedIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the verified identity from the context, or nil
// when the request was not authenticated.
func IdentityFromContext(ctx context.Context) *domain.VerifiedIdentity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	id, _ := v.(*domain.VerifiedIdentity)
	return id
}
