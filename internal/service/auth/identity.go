package auth

import (
	"context"

	"clientportal/internal/model"
)

type contextKey struct{}

var userKey contextKey

// WithUser stores the authenticated user in ctx. The auth middleware calls
// this once per request.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// ContextIdentity is the identity provider backing the dashboard
// assembler: it reads the user the middleware placed in the request
// context, keeping the core free of any ambient auth state.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (*model.User, error) {
	return UserFromContext(ctx), nil
}
