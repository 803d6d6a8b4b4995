package middlewares

import (
	"context"
	"net/http"

	"github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/logger"
)

// Tokener defines the minimal token operations needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request, cookieName string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware returns a middleware that validates the session token
// carried in the Authorization header or the named cookie and stores
// its claims in the request context. When requireAdmin is set, tokens
// without the admin role are rejected. All failures are reported as a
// bare 401 without distinguishing the cause.
func AuthMiddleware(tokener Tokener, cookieName string, requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r, cookieName)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if requireAdmin && claims.Role != jwt.RoleAdmin {
				logger.Log.Errorw("authorization failed", "err", "admin role required", "username", claims.Username)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(setClaimsToContext(ctx, claims)))
		})
	}
}

// claimsKeyType is an unexported type for the claims context key
type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// setClaimsToContext stores token claims in the context
func setClaimsToContext(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves token claims from the context. Returns nil if not present.
func GetClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}
