// Package rbac guards routes by the role claim placed in the request
// context by middleware.AuthMiddleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/voucherhub/pkg/middleware"
	"github.com/shashiranjanraj/voucherhub/pkg/response"
)

// HasRole allows the request only when the caller's role is one of roles.
// A request with no identity at all is answered 401, a wrong role 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
