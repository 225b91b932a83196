package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDKey is the context key for storing the authenticated user id.
const userIDKey contextKey = "user_id"

// ContextWithUser adds the verified user id to the context.
// Only the auth middleware should call this, after token verification.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user id from the context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// MustUserIDFromContext retrieves the authenticated user id from the context.
// Panics if not present (use only behind the auth middleware).
func MustUserIDFromContext(ctx context.Context) string {
	id := UserIDFromContext(ctx)
	if id == "" {
		panic("user id not found in context - ensure auth middleware is applied")
	}
	return id
}
