package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	principalKey ctxKey = "principal"
	roleKey      ctxKey = "role"
	requestIDKey ctxKey = "request_id"
)

// WithPrincipal stores the authenticated ledger address and its role in the context.
func WithPrincipal(ctx context.Context, address, role string) context.Context {
	ctx = context.WithValue(ctx, principalKey, address)
	return context.WithValue(ctx, roleKey, role)
}

// PrincipalFromCtx extracts the authenticated address from the context.
// Returns "" and false if the value is missing, blank, or wrong type.
func PrincipalFromCtx(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(principalKey).(string)
	if !ok || strings.TrimSpace(p) == "" {
		return "", false
	}
	return p, true
}

// RoleFromCtx extracts the principal's role. Returns "" if absent.
func RoleFromCtx(ctx context.Context) string {
	r, _ := ctx.Value(roleKey).(string)
	return r
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
