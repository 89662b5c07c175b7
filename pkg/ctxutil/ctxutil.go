// Package ctxutil provides typed accessors for request-scoped context values.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/juniperhq/storefront-backend/internal/domain"
)

type ctxKey string

const (
	identityKey  ctxKey = "identity"
	requestIDKey ctxKey = "request_id"
)

// WithIdentity stores the resolved caller identity in the context.
func WithIdentity(ctx context.Context, id domain.CallerIdentity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx extracts the caller identity from the context.
// Returns false if no identity has been resolved for this request.
func IdentityFromCtx(ctx context.Context) (domain.CallerIdentity, bool) {
	id, ok := ctx.Value(identityKey).(domain.CallerIdentity)
	if !ok || id.Kind == "" {
		return domain.CallerIdentity{}, false
	}
	return id, true
}

// UserIDFromCtx extracts the authenticated user id from the context.
// Returns uuid.Nil and false for guests and unresolved requests.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromCtx(ctx)
	if !ok || !id.IsUser() || id.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.UserID, true
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
