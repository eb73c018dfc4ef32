package auth

import "context"

type ctxKey string

// ContextUserKey is where the authenticated user is stored in the request context.
const ContextUserKey ctxKey = "user"

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// ContextWithUser returns a child context carrying the authenticated user.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
