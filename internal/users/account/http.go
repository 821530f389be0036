// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tamgioi/internal/platform/request"
	"github.com/taibuivan/tamgioi/internal/platform/respond"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
	"github.com/taibuivan/tamgioi/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts endpoints every client may call.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/track", handler.track)
	router.Get("/me", handler.me)
}

// RegisterAdminRoutes mounts the directory endpoints for moderators.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAccounts)
	router.Get("/admins", handler.listAdmins)
	router.Get("/{userID}", handler.getAccount)
	router.Put("/{userID}/admin", handler.setAdmin)
}

func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	var payload Profile
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Track(request.Context(), payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetAccount(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	accounts, total, err := handler.service.ListAccounts(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, accounts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listAdmins(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.service.ListAdmins(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accounts)
}

func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetAccount(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) setAdmin(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.SetAdmin(request.Context(), userID, payload.IsAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
