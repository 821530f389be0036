// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapping

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

// RegisterRoutes mounts public read endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMappings)
	router.Get("/{id}", handler.getMapping)
}

// RegisterAdminRoutes mounts moderation endpoints for direct catalog edits.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Put("/", handler.upsertMapping)
	router.Delete("/{id}", handler.deleteMapping)
}

func (handler *Handler) listMappings(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	mappings, total, err := handler.service.ListMappings(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, mappings, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getMapping(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	mapping, err := handler.service.GetMapping(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mapping)
}

func (handler *Handler) upsertMapping(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Chapters  []int `json:"chapters"`
		Episode3D *int  `json:"episode_3d"`
		Episode2D *int  `json:"episode_2d"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	mapping, merged, err := handler.service.UpsertMapping(
		request.Context(), payload.Chapters, payload.Episode3D, payload.Episode2D)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if merged {
		respond.OK(writer, mapping)
		return
	}
	respond.Created(writer, mapping)
}

func (handler *Handler) deleteMapping(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.service.DeleteMapping(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
