// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tamgioi HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/tamgioi/internal/admin"
	"github.com/taibuivan/tamgioi/internal/api"
	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
	"github.com/taibuivan/tamgioi/internal/contrib/session"
	"github.com/taibuivan/tamgioi/internal/core/chapter"
	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/core/mapping"
	"github.com/taibuivan/tamgioi/internal/core/resolver"
	"github.com/taibuivan/tamgioi/internal/platform/config"
	"github.com/taibuivan/tamgioi/internal/platform/constants"
	"github.com/taibuivan/tamgioi/internal/platform/migration"
	pgstore "github.com/taibuivan/tamgioi/internal/platform/postgres"
	redisstore "github.com/taibuivan/tamgioi/internal/platform/redis"
	"github.com/taibuivan/tamgioi/internal/platform/sec"
	"github.com/taibuivan/tamgioi/internal/users/account"
	"github.com/taibuivan/tamgioi/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Process-lifetime context for background workers (rate limiter sweep).
	// Cancelled only when main returns.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Catalog.
	chapterService := chapter.NewService(chapter.NewRepository(pool), log)
	episodeService := episode.NewService(episode.NewRepository(pool), log)
	mappingRepository := mapping.NewRepository(pool)
	mappingService := mapping.NewService(mappingRepository, log)
	resolverService := resolver.NewService(
		chapter.NewRepository(pool), episode.NewRepository(pool), mappingRepository, log)

	// Users.
	accountService := account.NewService(account.NewRepository(pool), log)
	authService := auth.NewService(accountService, account.NewRepository(pool), jwtSvc, cfg.RootAdminID, log)

	// Contribution pipeline and submission form.
	contributionRepository := contribution.NewRepository(pool)
	contributionService := contribution.NewService(contributionRepository,
		mappingService, chapterService, episodeService, accountService, log)
	sessionService := session.NewService(session.NewRepository(rdb), contributionService, log)

	// Moderation surface.
	var notifier admin.Notifier
	if cfg.BroadcastWebhookURL != "" {
		notifier = admin.NewWebhookNotifier(cfg.BroadcastWebhookURL)
	} else {
		notifier = admin.NewLogNotifier(log)
	}
	adminService := admin.NewService(chapterService, episodeService, mappingService,
		contributionRepository, accountService, notifier, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         auth.NewHandler(authService),
		Resolver:     resolver.NewHandler(resolverService),
		Chapter:      chapter.NewHandler(chapterService),
		Episode:      episode.NewHandler(episodeService),
		Mapping:      mapping.NewHandler(mappingService),
		Contribution: contribution.NewHandler(contributionService),
		Session:      session.NewHandler(sessionService),
		Account:      account.NewHandler(accountService),
		Admin:        admin.NewHandler(adminService),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
