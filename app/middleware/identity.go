package middleware

import (
	"context"
	"net/http"

	"feedback-board/app/authz"
	"feedback-board/app/session"
)

type ctxKey int

const identityKey ctxKey = 1

// WithIdentity resolves the caller's session identity once per request and
// parks it in the request context for the handlers downstream.
func WithIdentity(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := sessions.Identity(r)
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the identity resolved by WithIdentity, or anonymous if
// the middleware never ran.
func GetIdentity(ctx context.Context) authz.Identity {
	if v := ctx.Value(identityKey); v != nil {
		if ident, ok := v.(authz.Identity); ok {
			return ident
		}
	}
	return authz.Anonymous()
}
