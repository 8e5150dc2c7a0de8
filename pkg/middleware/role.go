package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/apiErrors"
)

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warn("unauthenticated access attempt")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Not authenticated", nil)
				return
			}

			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logrus.WithFields(logrus.Fields{"subject": claims.Subject, "role": claims.Role}).Warn("access denied")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this resource", nil)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleViewer)
}
