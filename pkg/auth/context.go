package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	ID       uuid.UUID
	Username string
	Staff    bool
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal set by the authentication middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
