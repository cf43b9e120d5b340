package middleware

import (
	"net/http"
	"strings"

	"github.com/codclick-aut6/clickprato6-sub000/api/responses"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type contextKey string

const sessionIDKey contextKey = "session_id"

// Session requires the anonymous session header carts and checkouts are
// keyed on. Requests without it are rejected before any handler runs.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing X-Session-Id header"))
				return
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			ctx = WithSessionID(ctx, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
