package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/rosterhq/roster-console/internal/handler/http/response"
)

// AuthRequired rejects requests whose UI cookie is missing, expired, or
// not a UI token. It sits behind jwtauth.Verifier, which parses the
// cookie into the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "Not logged in")
			return
		}
		if tokenType, _ := claims["type"].(string); tokenType != "ui" {
			response.Unauthorized(w, "Invalid session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Activity rearms the inactivity watchdog on every authenticated
// request. It must sit inside AuthRequired so unauthenticated polling
// cannot keep a session alive.
func Activity(reset func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reset()
			next.ServeHTTP(w, r)
		})
	}
}
