package middleware

import (
	"fmt"
	"net/http"

	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

// RequirePermission checks the acting user against a permission codename.
// Superusers pass every check; the permission lookup covers that.
func RequirePermission(rbacService rbac.Service, codename string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserID(r)
			if userID == "" {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", codename))
				return
			}

			allowed, err := rbacService.CheckPermission(r.Context(), userID, codename)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", codename))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
