package middleware

import "context"

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxSessionID contextKey = "session_id"
	ctxAdminID   contextKey = "admin_id"
	ctxTokenJTI  contextKey = "token_jti"
)

func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxRequestID).(string)
	return value
}

func SessionIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxSessionID).(string)
	return value
}

func AdminIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxAdminID).(string)
	return value
}

func TokenJTIFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxTokenJTI).(string)
	return value
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestID, requestID)
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, ctxAdminID, adminID)
}

func WithTokenJTI(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, ctxTokenJTI, jti)
}
