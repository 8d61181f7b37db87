package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type contextKey string

// UserIDKey carries the authenticated subject id resolved by Authenticator.
const UserIDKey contextKey = "userID"

// Authenticator verifies the bearer access token on protected routes and
// attaches the subject id to the request context. It only calls the codec;
// ledger revocation never affects access tokens, which stay accepted until
// their own expiry.
func Authenticator(codec ports.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			subjectID, err := codec.Verify(tokenString, domain.PurposeAccess)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
