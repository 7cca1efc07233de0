package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
)

type contextKey string

const (
	ctxOwnerID    contextKey = "owner_id"
	ctxTokenID    contextKey = "token_id"
	ctxTerminalID contextKey = "terminal_id"
)

// OwnerIDFromContext returns the acting owner. Requests that never passed
// through OptionalAuth fall back to the shared demo owner.
func OwnerIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return catalog.DemoOwnerID
	}
	if v, ok := ctx.Value(ctxOwnerID).(uuid.UUID); ok {
		return v
	}
	return catalog.DemoOwnerID
}

// TokenIDFromContext returns the JWT ID of the authenticated request, if any.
func TokenIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTokenID).(string); ok {
		return v
	}
	return ""
}

// TerminalIDFromContext returns the terminal identifier extracted from headers.
func TerminalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTerminalID).(string); ok {
		return v
	}
	return ""
}

// WithOwnerID injects the owner identifier into the context.
func WithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOwnerID, ownerID)
}

// WithTerminalID injects the terminal identifier into the context.
func WithTerminalID(ctx context.Context, terminalID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTerminalID, terminalID)
}
