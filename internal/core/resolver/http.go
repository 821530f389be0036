// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resolver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tamgioi/internal/core/episode"
	requestutil "github.com/taibuivan/tamgioi/internal/platform/request"
	"github.com/taibuivan/tamgioi/internal/platform/respond"
	"github.com/taibuivan/tamgioi/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public cross-reference endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/chapter/{number}", handler.resolveChapter)
	router.Get("/episode/{axis}/{number}", handler.resolveEpisode)
	router.Get("/full", handler.fullList)
}

func (handler *Handler) resolveChapter(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolution, err := handler.service.ResolveChapter(request.Context(), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resolution)
}

func (handler *Handler) resolveEpisode(writer http.ResponseWriter, request *http.Request) {
	axis := episode.Axis(requestutil.Param(request, "axis"))
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolution, err := handler.service.ResolveEpisode(request.Context(), axis, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resolution)
}

func (handler *Handler) fullList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, total, err := handler.service.FullList(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
