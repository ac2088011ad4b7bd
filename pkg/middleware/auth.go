package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/voucherhub/pkg/auth"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// AuthMiddleware requires a valid access token in the Authorization header
// and stores the caller's id and role in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			logger.WithCtx(r.Context()).Debug("rejected token", "error", err)
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.UserID, claims.Role)))
	})
}

// WithIdentity stores the authenticated user in ctx. Tests use it to skip
// token issuance.
func WithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, userID)
	return context.WithValue(ctx, roleKey{}, role)
}

// UserIDFromCtx returns the hex id stored by AuthMiddleware.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// RoleFromCtx returns the role claim stored by AuthMiddleware.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok && role != ""
}
