// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

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
	router.Get("/{axis}/{number}", handler.getEpisode)
}

// RegisterAdminRoutes mounts moderation endpoints for direct catalog edits.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Put("/", handler.upsertEpisode)
	router.Delete("/{axis}/{number}", handler.deleteEpisode)
}

func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	axis := Axis(requestutil.Param(request, "axis"))
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.GetEpisode(request.Context(), axis, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

func (handler *Handler) upsertEpisode(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Axis   string `json:"axis"`
		Number int    `json:"number"`
		Title  string `json:"title"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	episode := &Episode{Axis: Axis(payload.Axis), Number: payload.Number, Title: payload.Title}
	if err := handler.service.UpsertEpisode(request.Context(), episode); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

func (handler *Handler) deleteEpisode(writer http.ResponseWriter, request *http.Request) {
	axis := Axis(requestutil.Param(request, "axis"))
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEpisode(request.Context(), axis, number); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
