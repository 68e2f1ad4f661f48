package middleware

import (
	"context"

	"github.com/ocampodev/supplyline-backend/pkg/auth"
)

type contextKey string

const (
	ctxCurrentUser contextKey = "current_user"
	ctxSessionID   contextKey = "session_id"
)

// CurrentUserFromContext returns the authenticated actor seeded by Auth.
func CurrentUserFromContext(ctx context.Context) (auth.CurrentUser, bool) {
	if ctx == nil {
		return auth.CurrentUser{}, false
	}
	user, ok := ctx.Value(ctxCurrentUser).(auth.CurrentUser)
	return user, ok
}

// SessionIDFromContext returns the jti of the access token behind the request.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithCurrentUser injects the actor into the context. Handler tests use it to
// skip the token round-trip.
func WithCurrentUser(ctx context.Context, user auth.CurrentUser) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCurrentUser, user)
}

// WithSessionID injects the session id into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
