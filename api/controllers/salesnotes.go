package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/api/validators"
	"github.com/ocampodev/supplyline-backend/internal/salesnotes"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

type createDraftItemRequest struct {
	OrderItemID string `json:"order_item_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type createDraftRequest struct {
	StoreID string                   `json:"store_id" validate:"required,uuid"`
	Items   []createDraftItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes   *string                  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// SalesNoteList returns cursor-paginated notes; store members are scoped to
// their own store by the service.
func SalesNoteList(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := salesnotes.ListFilters{}
		if filters.StoreID, err = validators.ParseQueryUUID(r, "store_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseSalesNoteStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		resp, err := svc.List(r.Context(), filters, params, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// SalesNoteCreate builds a draft directly from selected order items,
// bypassing the pool.
func SalesNoteCreate(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createDraftRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, parseErr := uuid.Parse(req.StoreID)
		if parseErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid store id"))
			return
		}

		input := salesnotes.CreateDraftInput{StoreID: storeID, Notes: req.Notes, Actor: actor}
		for _, item := range req.Items {
			itemID, parseErr := uuid.Parse(item.OrderItemID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid order item id"))
				return
			}
			input.Items = append(input.Items, salesnotes.CreateDraftItem{OrderItemID: itemID, Quantity: item.Quantity})
		}

		resp, err := svc.CreateDraft(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// SalesNoteDetail returns one note with its lines and order context.
func SalesNoteDetail(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		noteID, err := validators.PathUUID(chi.URLParam(r, "noteID"), "noteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Get(r.Context(), noteID, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// SalesNoteShip moves a draft to shipped and applies its quantities to the
// underlying order items.
func SalesNoteShip(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		noteID, err := validators.PathUUID(chi.URLParam(r, "noteID"), "noteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkShipped(r.Context(), noteID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": string(enums.SalesNoteStatusShipped)})
	}
}

// SalesNoteReceive confirms receipt. The service enforces the founder or
// manager gate for the note's store.
func SalesNoteReceive(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		noteID, err := validators.PathUUID(chi.URLParam(r, "noteID"), "noteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkReceived(r.Context(), noteID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": string(enums.SalesNoteStatusReceived)})
	}
}

// SalesNoteDelete rolls a note back, returning its shipped quantities to the
// orders it drew from.
func SalesNoteDelete(svc salesnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		noteID, err := validators.PathUUID(chi.URLParam(r, "noteID"), "noteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), noteID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
