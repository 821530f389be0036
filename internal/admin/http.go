// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

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

// RegisterAdminRoutes mounts the moderation surface. There are no public
// routes in this package.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/statistics", handler.statistics)
	router.Post("/broadcast", handler.broadcast)
}

func (handler *Handler) statistics(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.GetStatistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) broadcast(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	report, err := handler.service.Broadcast(request.Context(), payload.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
