// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"deadline", fmt.Errorf("select: %w", context.DeadlineExceeded), apperr.CodeStorageUnavailable},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"missing_account", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeNotFound},
		{"malformed_uuid", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, apperr.CodeNotFound},
		{"other", errors.New("syntax error"), apperr.CodeInternal},
		{"passthrough", apperr.Forbidden("no"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Post"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Post"))
}
