// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contribution

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tamgioi/internal/core/link"
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

// RegisterRoutes mounts endpoints for authenticated contributors.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/mappings", handler.submitMapping)
	router.Post("/links", handler.submitLink)
	router.Get("/mine", handler.listMine)
	router.Get("/top", handler.topContributors)
}

// RegisterAdminRoutes mounts the review queue for moderators.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/pending", handler.listPending)
	router.Get("/{id}", handler.getContribution)
	router.Post("/{id}/approve", handler.approve)
	router.Post("/{id}/reject", handler.reject)
}

// # Submission Endpoints

func (handler *Handler) submitMapping(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		Chapters  []int `json:"chapters"`
		Episode3D *int  `json:"episode_3d"`
		Episode2D *int  `json:"episode_2d"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	contribution, err := handler.service.SubmitMapping(request.Context(),
		claims.UserID, claims.Username, payload.Chapters, payload.Episode3D, payload.Episode2D)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, contribution)
}

func (handler *Handler) submitLink(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		Target string `json:"target"`
		Number int    `json:"number"`
		Source string `json:"source"`
		URL    string `json:"url"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	contribution, err := handler.service.SubmitLink(request.Context(),
		claims.UserID, claims.Username, TargetKind(payload.Target), payload.Number,
		link.Link{Source: payload.Source, URL: payload.URL})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, contribution)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	contributions, total, err := handler.service.ListByUser(request.Context(),
		userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, contributions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) topContributors(writer http.ResponseWriter, request *http.Request) {
	limit := 0
	if raw := request.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	ranks, err := handler.service.TopContributors(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ranks)
}

// # Review Endpoints

func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	contributions, total, err := handler.service.ListPending(request.Context(),
		params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, contributions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getContribution(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	contribution, err := handler.service.GetContribution(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contribution)
}

func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.Approve)
}

func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.Reject)
}

func (handler *Handler) review(writer http.ResponseWriter, request *http.Request,
	decide func(ctx context.Context, id string, reviewerID int64, note string) (*Contribution, error)) {

	reviewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		Note string `json:"note"`
	}
	// An empty body is fine; a note is optional.
	if request.ContentLength > 0 {
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}
	}

	id := requestutil.Param(request, "id")
	contribution, err := decide(request.Context(), id, reviewerID, payload.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contribution)
}
