package auditlog

import "context"

type userIDKey struct{}

// WithUserID carries the acting user's id so audit entries written further
// down the call chain can attribute the action.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFrom returns the acting user's id, if one was attached.
func UserIDFrom(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey{}).(string)
	return uid, ok
}
