package middleware

import (
	"net/http"
	"slices"

	"catalog-service/internal/domain/entity"
	"catalog-service/pkg/response"
)

// RequireRole admits only callers whose token role is one of roles. It must
// run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			switch {
			case !ok:
				response.Unauthorized(w, "Role information not found")
			case !slices.Contains(roles, role):
				response.Forbidden(w, "You are not allowed to access this resource")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
