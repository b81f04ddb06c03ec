package auth

import "context"

type ctxKey string

const principalKey ctxKey = "principal"

// WithUserID stores the authenticated user's id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil || userID == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey, userID)
}

// UserIDFromContext retrieves the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(principalKey).(string); ok {
		return userID
	}
	return ""
}
