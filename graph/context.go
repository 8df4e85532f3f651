package graph

import (
	"context"

	"phonebook-server/services"
)

// Key type for context values
type contextKey string

const currentUserKey contextKey = "currentUser"

// WithCurrentUser stores the request's resolved user on the context.
func WithCurrentUser(ctx context.Context, user *services.ResolvedUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the request's resolved user, or nil when the request
// carried no valid bearer token.
func CurrentUser(ctx context.Context) *services.ResolvedUser {
	user, ok := ctx.Value(currentUserKey).(*services.ResolvedUser)
	if !ok {
		return nil
	}
	return user
}
