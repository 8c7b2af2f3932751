// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/devhub/internal/platform/ctxutil"
	"github.com/taibuivan/devhub/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "test-request-id")
	assert.Equal(t, "test-request-id", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the verified caller round-trips and that an
empty identity counts as anonymous.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	_, ok := ctxutil.GetIdentity(ctx)
	assert.False(t, ok)

	_, ok = ctxutil.GetIdentity(ctxutil.WithIdentity(ctx, sec.Identity{}))
	assert.False(t, ok)

	identity, ok := ctxutil.GetIdentity(ctxutil.WithIdentity(ctx, sec.Identity{ID: "user-123"}))
	assert.True(t, ok)
	assert.Equal(t, "user-123", identity.ID)
}
