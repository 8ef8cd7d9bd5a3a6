package middleware

import "context"

// ContextKey is the type of context keys set by this package.
type ContextKey string

const (
	// UserIDCtxKey holds the user_id claim of an authenticated request.
	UserIDCtxKey = ContextKey("user_id")
	// UserRoleCtxKey holds the role claim of an authenticated request.
	UserRoleCtxKey = ContextKey("user_role")
)

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}
