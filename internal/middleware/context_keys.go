package middleware

// ContextKey is a private key type so context values can not collide with
// other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id.
	UserIDCtxKey = ContextKey("user_id")

	// UserRoleCtxKey holds the authenticated user's role.
	UserRoleCtxKey = ContextKey("user_role")

	// UserNameCtxKey holds the authenticated user's display name, used to
	// derive resume object names.
	UserNameCtxKey = ContextKey("user_name")

	// RequestIDCtxKey holds the per-request correlation id.
	RequestIDCtxKey = ContextKey("request_id")
)
