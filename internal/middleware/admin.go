package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// TokenVerifier reports whether a bearer token is a valid admin credential.
type TokenVerifier func(token string) bool

// RequireAdmin guards administrative endpoints. The token travels as a
// bearer credential; handlers that need it again (for rate-limit identity)
// read it through AdminToken.
func RequireAdmin(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AdminToken(r)
			if token == "" || !verify(token) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "unauthorized",
					"message": "invalid or expired token",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminToken extracts the bearer token from the Authorization header.
func AdminToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
