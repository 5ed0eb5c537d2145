// Package api implements the sitecms REST API using chi.
package api

import (
	"net/http"
	"strings"

	"github.com/giralt/sitecms/internal/auth"
)

// SessionMiddleware returns middleware that requires a live admin session.
// The token is read from the session cookie or, for API clients, from an
// "Authorization: Bearer <token>" header. If enabled is false every request
// passes through (disabled mode, local development).
func SessionMiddleware(enabled bool, sessions *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			if !sessions.Validate(sessionToken(r)) {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
