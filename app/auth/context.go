package auth

import (
	"context"

	"yatube/app/models"
)

type contextKey string

const userKey = contextKey("user")

// WithUser returns a context carrying the signed-in user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the signed-in user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
