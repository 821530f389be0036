// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tamgioi/internal/platform/request"
	"github.com/taibuivan/tamgioi/internal/platform/respond"
	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public login endpoint.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
}

// RegisterAdminRoutes mounts credential provisioning for moderators.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Put("/{userID}/credentials", handler.setCredentials)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		UserID   int64  `json:"user_id"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	tokens, err := handler.service.Login(request.Context(), payload.UserID, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tokens)
}

func (handler *Handler) setCredentials(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.Int64Param(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.SetCredentials(request.Context(), userID, payload.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
