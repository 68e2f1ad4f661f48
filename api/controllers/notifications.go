package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ocampodev/supplyline-backend/api/responses"
	"github.com/ocampodev/supplyline-backend/api/validators"
	"github.com/ocampodev/supplyline-backend/internal/notifications"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

// ListNotifications returns paginated notifications for the active store.
func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if actor.ActiveStoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePermissionDenied, "store context required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := notifications.ListParams{
			StoreID: *actor.ActiveStoreID,
			Limit:   limit,
			Cursor:  strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if unreadOnly, parseErr := validators.ParseQueryBool(r, "unread_only"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if unreadOnly != nil {
			params.UnreadOnly = *unreadOnly
		}

		resp, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// MarkNotificationRead marks one of the store's notifications as read.
func MarkNotificationRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if actor.ActiveStoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePermissionDenied, "store context required"))
			return
		}

		notificationID, err := validators.PathUUID(chi.URLParam(r, "notificationID"), "notificationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkRead(r.Context(), *actor.ActiveStoreID, notificationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}

// MarkAllNotificationsRead marks every unread notification for the store.
func MarkAllNotificationsRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if actor.ActiveStoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodePermissionDenied, "store context required"))
			return
		}

		updated, err := svc.MarkAllRead(r.Context(), *actor.ActiveStoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"updated": updated})
	}
}
