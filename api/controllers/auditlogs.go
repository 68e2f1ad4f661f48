package controllers

import (
	"net/http"
	"strings"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/api/validators"
	"github.com/ocampodev/supplyline-backend/internal/audit"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

// AuditLogList returns the audit trail for one entity, newest first.
func AuditLogList(repo audit.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType := strings.TrimSpace(r.URL.Query().Get("entity_type"))
		if entityType == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "entity_type is required"))
			return
		}

		entityID, err := validators.ParseQueryUUID(r, "entity_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if entityID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "entity_id is required"))
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, next, err := repo.ListByEntity(r.Context(), entityType, *entityID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := map[string]any{"entries": rows}
		if next != nil {
			resp["next_cursor"] = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, resp)
	}
}
