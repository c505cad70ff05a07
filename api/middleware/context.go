package middleware

import "context"

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxTableID   contextKey = "table_id"
	ctxTableCode contextKey = "table_code"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func TableIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTableID).(string); ok {
		return v
	}
	return ""
}

func TableCodeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTableCode).(string); ok {
		return v
	}
	return ""
}

// WithSession injects session identifiers into the context. Exposed for
// handler tests.
func WithSession(ctx context.Context, sessionID, tableID, tableCode string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	ctx = context.WithValue(ctx, ctxTableID, tableID)
	return context.WithValue(ctx, ctxTableCode, tableCode)
}
