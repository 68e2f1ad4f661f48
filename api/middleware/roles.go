package middleware

import (
	"net/http"

	"github.com/ocampodev/supplyline-backend/api/responses"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

// RequireAdmin restricts a route subtree to platform admins.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUserFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}
			if !user.IsAdmin() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePermissionDenied, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStoreMember admits store members and platform admins. Per-resource
// store checks still happen in the services; this gate only refuses tokens
// that carry neither a store membership nor the admin role.
func RequireStoreMember(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUserFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}
			if !user.IsAdmin() && user.ActiveStoreID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePermissionDenied, "store membership required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
