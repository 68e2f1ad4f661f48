package controllers

import (
	"net/http"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/internal/stores"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

// StoreList returns the active stores. Warehouse staff use it to scope pool
// staging and sales note views.
func StoreList(repo stores.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stores": rows})
	}
}
