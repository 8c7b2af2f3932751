// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/users/profile"
)

func githubStub(t *testing.T, handler http.HandlerFunc) *profile.GitHubClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return profile.NewGitHubClient(server.URL, "token-123", 100, 10, quietLogger())
}

/*
TestGitHubClient_LatestRepos checks the request shape and the mapping of the payload.
*/
func TestGitHubClient_LatestRepos(t *testing.T) {
	client := githubStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/ada/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("direction"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"name":"engine","full_name":"ada/engine","description":null,"html_url":"https://github.com/ada/engine","language":"Go","stargazers_count":3,"watchers_count":3,"forks_count":1,"created_at":"2024-01-02T03:04:05Z"},
			{"name":"notes","full_name":"ada/notes","description":"Notes","html_url":"https://github.com/ada/notes","language":null,"stargazers_count":0,"watchers_count":0,"forks_count":0,"created_at":"2023-01-02T03:04:05Z"}
		]`)
	})

	repos, err := client.LatestRepos(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "engine", repos[0].Name)
	assert.Empty(t, repos[0].Description)
	assert.Equal(t, "Go", repos[0].Language)
	assert.Equal(t, 3, repos[0].Stars)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), repos[0].CreatedAt)
	assert.Equal(t, "Notes", repos[1].Description)
	assert.Empty(t, repos[1].Language)
}

/*
TestGitHubClient_Limit trims a larger response to five entries.
*/
func TestGitHubClient_Limit(t *testing.T) {
	client := githubStub(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"name":"1"},{"name":"2"},{"name":"3"},{"name":"4"},{"name":"5"},{"name":"6"},{"name":"7"}]`)
	})

	repos, err := client.LatestRepos(context.Background(), "ada")
	require.NoError(t, err)
	assert.Len(t, repos, 5)
}

/*
TestGitHubClient_Failures maps GitHub responses to the error taxonomy.
*/
func TestGitHubClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"unknown user", http.StatusNotFound, `{"message":"Not Found"}`, apperr.CodeNotFound},
		{"rate limited", http.StatusForbidden, `{"message":"API rate limit exceeded"}`, apperr.CodeUpstream},
		{"server error", http.StatusInternalServerError, ``, apperr.CodeUpstream},
		{"garbage body", http.StatusOK, `not json`, apperr.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := githubStub(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.LatestRepos(context.Background(), "ada")
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

/*
TestGitHubClient_CancelledWhileThrottled gives up once the bucket is empty and
the context ends.
*/
func TestGitHubClient_CancelledWhileThrottled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(server.Close)

	client := profile.NewGitHubClient(server.URL, "", 0.001, 1, quietLogger())

	_, err := client.LatestRepos(context.Background(), "ada")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.LatestRepos(ctx, "ada")
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
}

// memCache is an in-memory [profile.RepoCache].
type memCache struct {
	entries map[string][]profile.Repo
	getErr  error
	setErr  error
	ttls    []time.Duration
}

func (m *memCache) Get(_ context.Context, username string) ([]profile.Repo, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if repos, ok := m.entries[username]; ok {
		return repos, nil
	}
	return nil, apperr.NotFound("Cached repositories")
}

func (m *memCache) Set(_ context.Context, username string, repos []profile.Repo, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[username] = repos
	m.ttls = append(m.ttls, ttl)
	return nil
}

/*
TestCachedRepoSource serves repeat lookups from the cache and never caches failures.
*/
func TestCachedRepoSource(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		source := &stubRepos{repos: []profile.Repo{{Name: "engine"}}}
		cache := &memCache{entries: map[string][]profile.Repo{}}
		cached := profile.NewCachedRepoSource(source, cache, 10*time.Minute, quietLogger())

		for range 3 {
			repos, err := cached.LatestRepos(ctx, "ada")
			require.NoError(t, err)
			assert.Equal(t, source.repos, repos)
		}
		assert.Equal(t, 1, source.calls)
		assert.Equal(t, []time.Duration{10 * time.Minute}, cache.ttls)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		source := &stubRepos{err: apperr.NotFound("GitHub profile")}
		cache := &memCache{entries: map[string][]profile.Repo{}}
		cached := profile.NewCachedRepoSource(source, cache, time.Minute, quietLogger())

		_, err := cached.LatestRepos(ctx, "ghost")
		assert.True(t, apperr.IsNotFound(err))
		assert.Empty(t, cache.entries)
	})

	t.Run("no repositories encode as an empty list", func(t *testing.T) {
		source := &stubRepos{repos: []profile.Repo{}}
		cache := &memCache{entries: map[string][]profile.Repo{}}
		cached := profile.NewCachedRepoSource(source, cache, time.Minute, quietLogger())

		repos, err := cached.LatestRepos(ctx, "quiet")
		require.NoError(t, err)

		encoded, err := json.Marshal(repos)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(encoded))
	})

	t.Run("broken cache is bypassed", func(t *testing.T) {
		source := &stubRepos{repos: []profile.Repo{{Name: "engine"}}}
		cache := &memCache{entries: map[string][]profile.Repo{}, getErr: errors.New("down"), setErr: errors.New("down")}
		cached := profile.NewCachedRepoSource(source, cache, time.Minute, quietLogger())

		repos, err := cached.LatestRepos(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, source.repos, repos)
	})
}
