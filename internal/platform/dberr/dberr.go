// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/devhub/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it as an [apperr.AppError].
// resource names the aggregate in NOT_FOUND and CONFLICT messages. The original
// error is kept as Cause for logging.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(err)
	}

	// 2. Deadlines and unreachable servers surface as an outage, never as 500
	if Unavailable(err) {
		return apperr.StorageUnavailable(err)
	}

	// 3. Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource)).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			// Every foreign key in the schema points at users.account.
			return apperr.NotFound("User").WithCause(err)
		case pgerrcode.InvalidTextRepresentation:
			// A malformed id cannot name an existing row.
			return apperr.NotFound(resource).WithCause(err)
		}
	}

	return apperr.Internal(err)
}

// Unavailable reports whether err means the store could not answer in time.
func Unavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
