package auth

import (
	"net/http"
	"strings"

	"rentroll/internal/auth"
	"rentroll/internal/http/respond"
)

// RequireOwner verifies the Bearer token and puts the owner id on the
// request context. Requests without a valid token never reach a handler.
func RequireOwner(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ownerID, err := tokens.Verify(tokenStr)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithOwner(r.Context(), ownerID)))
		})
	}
}
