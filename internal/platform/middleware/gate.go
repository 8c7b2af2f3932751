// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/constants"
	"github.com/taibuivan/devhub/internal/platform/ctxutil"
	"github.com/taibuivan/devhub/internal/platform/respond"
	"github.com/taibuivan/devhub/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify credentials in middleware.
type TokenVerifier interface {
	Verify(token string) (sec.Identity, error)
}

// Gate turns the raw credential header into a verified [sec.Identity].
type Gate struct {
	verifier TokenVerifier
}

// NewGate constructs a [Gate] around verifier.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Resolve verifies a raw header value.
//
//   - blank value: UNAUTHENTICATED
//   - present but rejected by the verifier: INVALID_TOKEN
func (gate *Gate) Resolve(raw string) (sec.Identity, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return sec.Identity{}, apperr.Unauthenticated()
	}

	identity, err := gate.verifier.Verify(token)
	if err != nil {
		return sec.Identity{}, apperr.InvalidToken(err)
	}

	return identity, nil
}

// Require rejects any request without a valid credential and attaches the
// caller to the context otherwise. The wrapped handler never runs on failure.
//
// # Flow
//  1. Read the x-auth-token header.
//  2. Verify it via [Gate.Resolve].
//  3. Inject [sec.Identity] into the request context for downstream use.
func (gate *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity, err := gate.Resolve(request.Header.Get(constants.HeaderAuthToken))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if holder := callerHolderFrom(request.Context()); holder != nil {
			holder.identity = identity.ID
		}

		ctx := ctxutil.WithIdentity(request.Context(), identity)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// # Access Log Correlation

// callerHolder lets the gate report the caller back to [StructuredLogger],
// which only sees the context it created itself.
type callerHolder struct {
	identity string
}

type callerHolderKey struct{}

func withCallerHolder(ctx context.Context, holder *callerHolder) context.Context {
	return context.WithValue(ctx, callerHolderKey{}, holder)
}

func callerHolderFrom(ctx context.Context) *callerHolder {
	holder, _ := ctx.Value(callerHolderKey{}).(*callerHolder)
	return holder
}
