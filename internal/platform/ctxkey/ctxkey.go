// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the typed context keys shared between the
// middleware chain (which writes them) and ctxutil (which reads them).
// It exists as its own package only to break the import cycle between
// the two.
package ctxkey

// key is unexported so no other package can collide with these keys:
// context lookups match on the key's type as well as its value.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated reviewer claims.
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
