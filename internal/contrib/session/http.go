// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

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

// RegisterRoutes mounts the submission form endpoints. All of them act on
// the authenticated user's own form.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/start", handler.start)
	router.Post("/input", handler.input)
	router.Get("/", handler.current)
	router.Delete("/", handler.cancel)
}

func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Start(request.Context(), claims.UserID, claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, &Result{Session: s, Prompt: s.Prompt()})
}

func (handler *Handler) input(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.service.Input(request.Context(), userID, payload.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Current(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, &Result{Session: s, Prompt: s.Prompt()})
}

func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Cancel(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
