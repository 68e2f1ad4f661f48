package controllers

import (
	"net/http"
	"strings"

	"github.com/ocampodev/supplyline-backend/api/middleware"
	"github.com/ocampodev/supplyline-backend/api/validators"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

func currentUser(r *http.Request) (auth.CurrentUser, error) {
	user, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		return auth.CurrentUser{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return user, nil
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}
