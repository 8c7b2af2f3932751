// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/ctxutil"
	"github.com/taibuivan/devhub/internal/platform/middleware"
	"github.com/taibuivan/devhub/internal/platform/sec"
)

type stubVerifier struct {
	identity sec.Identity
	err      error
	calls    int
}

func (s *stubVerifier) Verify(string) (sec.Identity, error) {
	s.calls++
	return s.identity, s.err
}

/*
TestGate_Resolve covers the two failure kinds and success without HTTP.
*/
func TestGate_Resolve(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		verifier := &stubVerifier{}
		_, err := middleware.NewGate(verifier).Resolve("   ")

		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
		assert.Zero(t, verifier.calls, "verifier must not run without a token")
	})

	t.Run("rejected", func(t *testing.T) {
		verifier := &stubVerifier{err: errors.New("bad signature")}
		_, err := middleware.NewGate(verifier).Resolve("abc")

		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidToken))
	})

	t.Run("accepted", func(t *testing.T) {
		verifier := &stubVerifier{identity: sec.Identity{ID: "user-a"}}
		identity, err := middleware.NewGate(verifier).Resolve("abc")

		require.NoError(t, err)
		assert.Equal(t, "user-a", identity.ID)
	})
}

/*
TestGate_Require runs the real token service behind the middleware and checks
that downstream handlers are only reached with a valid credential.
*/
func TestGate_Require(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := sec.NewTokenService("secret", "test", sec.FixedClock(now))
	require.NoError(t, err)

	valid, err := tokens.Issue(sec.Identity{ID: "user-a"})
	require.NoError(t, err)

	expiredIssuer, err := sec.NewTokenService("secret", "test", sec.FixedClock(now.Add(-11*time.Hour)))
	require.NoError(t, err)
	expired, err := expiredIssuer.Issue(sec.Identity{ID: "user-a"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"no_header", "", http.StatusUnauthorized, apperr.CodeUnauthenticated},
		{"garbage", "garbage", http.StatusUnauthorized, apperr.CodeInvalidToken},
		{"expired", expired, http.StatusUnauthorized, apperr.CodeInvalidToken},
		{"valid", valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				reached = true
				identity, ok := ctxutil.GetIdentity(request.Context())
				assert.True(t, ok)
				assert.Equal(t, "user-a", identity.ID)
				writer.WriteHeader(http.StatusOK)
			})

			request := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
			if tt.header != "" {
				request.Header.Set("x-auth-token", tt.header)
			}
			recorder := httptest.NewRecorder()

			middleware.NewGate(tokens).Require(next).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode == "", reached)

			if tt.wantCode != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body["code"])
			}
		})
	}
}
