package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/campushours/officehours/internal/identity"
)

const claimsKey contextKey = "claims"

// Authenticator verifies the bearer token and stashes the resulting claims
// in the request context. Requests without a valid token never reach a
// handler.
func Authenticator(tokens *identity.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				writeError(w, http.StatusUnauthorized, "missing_token", "Authorization: Bearer <token> header is required")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token", "token is expired or malformed")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified caller identity. ok is false only
// on routes that skipped the Authenticator.
func ClaimsFromContext(ctx context.Context) (identity.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(identity.Claims)
	return c, ok
}
