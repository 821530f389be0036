// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Route Surface:

  - /api/v1/resolve, /chapters, /episodes, /mappings: public catalog reads.
  - /api/v1/contributions, /session, /accounts: authenticated contributor surface.
  - /api/v1/admin/...: moderation surface behind [middleware.RequireAdmin].
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tamgioi/internal/admin"
	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/contrib/session"
	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/core/resolver"
	"github.com/taibuivan/tamgioi/internal/platform/config"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/middleware"
	"github.com/taibuivan/tamgioi/internal/users/account"
	"github.com/taibuivan/tamgioi/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles moderator login and credential provisioning.
	Auth *auth.Handler

	// Resolver answers the public cross-reference queries.
	Resolver *resolver.Handler

	// Chapter, Episode and Mapping expose the catalog entries.
	Chapter *chapter.Handler
	Episode *episode.Handler
	Mapping *mapping.Handler

	// Contribution is the submission pipeline and review queue.
	Contribution *contribution.Handler

	// Session is the step-by-step submission form.
	Session *session.Handler

	// Account is the user directory.
	Account *account.Handler

	// Admin carries statistics and broadcast.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Public catalog reads.
		api.Route("/resolve", h.Resolver.RegisterRoutes)
		api.Route("/chapters", h.Chapter.RegisterRoutes)
		api.Route("/episodes", h.Episode.RegisterRoutes)
		api.Route("/mappings", h.Mapping.RegisterRoutes)
		api.Route("/auth", h.Auth.RegisterRoutes)

		// Contributor surface. Handlers demand claims themselves, so an
		// anonymous request gets a 401 from the handler, not a 404.
		api.Route("/contributions", h.Contribution.RegisterRoutes)
		api.Route("/session", h.Session.RegisterRoutes)
		api.Route("/accounts", h.Account.RegisterRoutes)

		// Moderation surface.
		api.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Use(middleware.RequireAdmin())

			adminRouter.Route("/chapters", h.Chapter.RegisterAdminRoutes)
			adminRouter.Route("/episodes", h.Episode.RegisterAdminRoutes)
			adminRouter.Route("/mappings", h.Mapping.RegisterAdminRoutes)
			adminRouter.Route("/contributions", h.Contribution.RegisterAdminRoutes)
			adminRouter.Route("/accounts", h.Account.RegisterAdminRoutes)
			adminRouter.Route("/auth", h.Auth.RegisterAdminRoutes)
			h.Admin.RegisterAdminRoutes(adminRouter)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
