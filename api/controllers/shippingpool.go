package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/api/validators"
	"github.com/ocampodev/supplyline-backend/internal/salesnotes"
	"github.com/ocampodev/supplyline-backend/internal/shippingpool"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

type poolAddRequest struct {
	OrderItemID string `json:"order_item_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type poolCommitRequest struct {
	StoreIDs []string `json:"store_ids" validate:"required,min=1,dive,uuid"`
	Notes    *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// PoolGrouped returns the staged pool grouped by store, the staging view the
// warehouse works from.
func PoolGrouped(svc shippingpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.GroupedByStore(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stores": groups})
	}
}

// PoolAdd stages a quantity of one order item.
func PoolAdd(svc shippingpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req poolAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, parseErr := uuid.Parse(req.OrderItemID)
		if parseErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid order item id"))
			return
		}

		entry, err := svc.Add(r.Context(), shippingpool.AddInput{
			OrderItemID: itemID,
			Quantity:    req.Quantity,
			Actor:       actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// PoolRemove discards a staged entry without touching shipped quantities.
func PoolRemove(svc shippingpool.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := validators.PathUUID(chi.URLParam(r, "entryID"), "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), entryID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// PoolCommit consolidates the selected store groups into shipped sales notes,
// one isolated transaction per store. Store groups succeed or fail
// independently, so a partial batch still returns the per-store outcomes.
func PoolCommit(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req poolCommitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := salesnotes.CommitInput{Notes: req.Notes, Actor: actor}
		for _, raw := range req.StoreIDs {
			storeID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid store id"))
				return
			}
			input.StoreIDs = append(input.StoreIDs, storeID)
		}

		result, err := svc.CommitPool(r.Context(), input)
		if result == nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err != nil {
			// The error aggregates the failed stores; the outcomes carry
			// the committed ones. Surface both.
			if logg != nil {
				logg.Error(r.Context(), "pool commit finished with store failures", err)
			}
			responses.WriteSuccessStatus(w, http.StatusMultiStatus, result)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
