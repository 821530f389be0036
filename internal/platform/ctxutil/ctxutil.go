// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil is the typed accessor layer over the per-request values
// the middleware chain plants in [context.Context]: the correlation id,
// the request-scoped logger and the authenticated reviewer claims.
//
// Handlers and services read through these accessors only; nothing outside
// the middleware writes to the context.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tamgioi/internal/platform/ctxkey"
	"github.com/taibuivan/tamgioi/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the correlation id to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "" when the context never
// passed through the request-id middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger. Background work that runs
// outside a request (startup, migrations) falls through to slog.Default,
// so callers never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser attaches verified reviewer claims to the context.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the reviewer claims, or nil for an anonymous
// request.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
