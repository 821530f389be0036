// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// RegisterRoutes mounts public read endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{number}", handler.getChapter)
}

// RegisterAdminRoutes mounts moderation endpoints for direct catalog edits.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Put("/", handler.upsertChapter)
	router.Delete("/{number}", handler.deleteChapter)
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

func (handler *Handler) upsertChapter(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	chapter := &Chapter{Number: payload.Number, Title: payload.Title}
	if err := handler.service.UpsertChapter(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), number); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
