// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies low-level pgx errors into the application's
// error taxonomy. Repositories pass every database error through [Wrap]
// with an action label, so the taxonomy stays uniform and raw SQLSTATE
// details never leak past the store layer.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tamgioi/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap classifies a database error into an [apperr.AppError]. The action
// label names the failing operation in the wrapped cause for diagnostics;
// the client-facing message never includes it.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("The record already exists")
		case pgerrcode.ConnectionException, pgerrcode.ConnectionFailure,
			pgerrcode.ConnectionDoesNotExist, pgerrcode.CannotConnectNow:
			return apperr.StoreUnavailable(fmt.Errorf("%s: %w", action, err))
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
