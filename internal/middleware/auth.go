package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves a bearer token to a principal. The production
// implementation compares a single shared-secret token by equality; the
// interface is the seam where a real token scheme could slot in.
type Authenticator interface {
	VerifyToken(token string) (*domain.User, error)
}

// AuthMiddleware enforces bearer-token auth on every request it wraps: a
// missing or malformed Authorization header is rejected with 401, a token
// the Authenticator does not accept with 403.
func AuthMiddleware(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "access token required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			user, err := auth.VerifyToken(parts[1])
			if err != nil {
				logger.Debug("Token verification failed", zap.Error(err))
				RespondWithError(w, http.StatusForbidden, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated principal from the request context.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
