package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated username through the request context.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated username, if any.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ContextWithUserID stamps the authenticated username onto the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}
