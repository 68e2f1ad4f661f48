package middleware

import (
	"net/http"
	"strings"

	"github.com/ocampodev/supplyline-backend/api/responses"
	pkgauth "github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/auth/session"
	"github.com/ocampodev/supplyline-backend/pkg/config"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

// Auth validates a bearer token, re-checks the Redis session behind its jti,
// and seeds the request context with the typed actor. A revoked session wins
// over an otherwise valid JWT.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session revoked"))
					return
				}
			}

			user := pkgauth.FromClaims(claims)
			ctx := WithCurrentUser(r.Context(), user)
			ctx = WithSessionID(ctx, claims.ID)

			if logg != nil {
				fields := map[string]any{
					"user_id": user.UserID.String(),
				}
				if user.SystemRole != nil {
					fields["system_role"] = string(*user.SystemRole)
				}
				if user.ActiveStoreID != nil {
					fields["store_id"] = user.ActiveStoreID.String()
				}
				if user.StoreRole != nil {
					fields["store_role"] = string(*user.StoreRole)
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
