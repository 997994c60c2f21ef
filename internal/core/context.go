package core

import "context"

type contextKey string

const (
	ctxKeySessionID contextKey = "session_id"
	ctxKeyIPAddress contextKey = "client_ip"
)

// ContextWithSessionID adds the caller's session identifier to context.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// SessionIDFromContext extracts the session identifier from context.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// ContextWithIPAddress adds the client IP address to context for logging.
func ContextWithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyIPAddress, ip)
}

// IPAddressFromContext extracts the client IP address from context.
func IPAddressFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIPAddress).(string); ok {
		return v
	}
	return ""
}
