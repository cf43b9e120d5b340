package middleware

import (
	"context"

	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
)

// WithSessionID attaches the cart session id to the request context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the session id set by the Session
// middleware. Handlers reached outside that chain get an error.
func SessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing session context")
	}
	return sessionID, nil
}
