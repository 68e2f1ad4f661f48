package controllers

import (
	"net/http"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/internal/catalog"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

// ProductList returns the active catalog for order intake.
func ProductList(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, next, err := repo.ListProducts(r.Context(), params, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := map[string]any{"products": products}
		if next != nil {
			resp["next_cursor"] = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, resp)
	}
}
