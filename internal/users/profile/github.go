// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/constants"
	"github.com/taibuivan/devhub/internal/platform/metrics"
	"github.com/taibuivan/devhub/pkg/slice"
)

// Repo is a public GitHub repository as returned to clients.
type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// apiRepo is the subset of the GitHub repository payload we read.
type apiRepo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

const githubRequestTimeout = 10 * time.Second

// GitHubClient reads public repositories from the GitHub REST API.
//
// Outbound calls share one token bucket so a burst of lookups cannot exhaust
// the API quota.
type GitHubClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewGitHubClient creates a client for baseURL. token may be empty.
func NewGitHubClient(baseURL, token string, requestsPerSecond float64, burst int, logger *slog.Logger) *GitHubClient {
	if burst < 1 {
		burst = 1
	}
	return &GitHubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: githubRequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		log:        logger.With("adapter", "github"),
	}
}

/*
LatestRepos returns up to [constants.GitHubRepoLimit] repositories of username,
newest first.

Returns:
  - []Repo: The repositories (possibly empty)
  - error: NOT_FOUND for an unknown user, UPSTREAM_ERROR for anything else
*/
func (client *GitHubClient) LatestRepos(ctx context.Context, username string) ([]Repo, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, apperr.Upstream("GitHub lookup is throttled", err)
	}

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(constants.GitHubRepoLimit))
	query.Set("sort", "created")
	query.Set("direction", "desc")
	requestURL := client.baseURL + "/users/" + url.PathEscape(username) + "/repos?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("github: create request: %w", err))
	}
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("User-Agent", constants.AppName)
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.log.WarnContext(ctx, "github_request_failed", slog.String("username", username), slog.String("error", err.Error()))
		return nil, apperr.Upstream("GitHub is unreachable", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("GitHub profile")
	case response.StatusCode != http.StatusOK:
		client.log.WarnContext(ctx, "github_unexpected_status", slog.String("username", username), slog.Int("status", response.StatusCode))
		return nil, apperr.Upstream("GitHub lookup failed", fmt.Errorf("github: unexpected status %d", response.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream("GitHub lookup failed", fmt.Errorf("github: read body: %w", err))
	}

	var payload []apiRepo
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperr.Upstream("GitHub lookup failed", fmt.Errorf("github: decode json: %w", err))
	}

	if len(payload) > constants.GitHubRepoLimit {
		payload = payload[:constants.GitHubRepoLimit]
	}

	repos := slice.Map(payload, toRepo)
	if repos == nil {
		repos = []Repo{}
	}

	client.log.DebugContext(ctx, "github_repos_fetched", slog.String("username", username), slog.Int("count", len(repos)))

	return repos, nil
}

func toRepo(api apiRepo) Repo {
	repo := Repo{
		Name:      api.Name,
		FullName:  api.FullName,
		HTMLURL:   api.HTMLURL,
		Stars:     api.StargazersCount,
		Watchers:  api.WatchersCount,
		Forks:     api.ForksCount,
		CreatedAt: api.CreatedAt,
	}
	if api.Description != nil {
		repo.Description = *api.Description
	}
	if api.Language != nil {
		repo.Language = *api.Language
	}
	return repo
}

// # Caching

// CachedRepoSource serves lookups from a [RepoCache] and falls back to source.
//
// Cache failures are logged and bypassed. Failed lookups are never cached.
// Concurrent misses for the same username share one upstream call.
type CachedRepoSource struct {
	source RepoSource
	cache  RepoCache
	ttl    time.Duration
	log    *slog.Logger
	group  singleflight.Group
}

// NewCachedRepoSource wraps source with cache.
func NewCachedRepoSource(source RepoSource, cache RepoCache, ttl time.Duration, logger *slog.Logger) *CachedRepoSource {
	return &CachedRepoSource{source: source, cache: cache, ttl: ttl, log: logger}
}

// LatestRepos implements [RepoSource].
func (cached *CachedRepoSource) LatestRepos(ctx context.Context, username string) ([]Repo, error) {
	repos, err := cached.cache.Get(ctx, username)
	if err == nil {
		metrics.GitHubLookup(metrics.LookupHit)
		return repos, nil
	}
	if !apperr.IsNotFound(err) {
		cached.log.WarnContext(ctx, "github_cache_read_failed", slog.String("username", username), slog.String("error", err.Error()))
	}

	result, err, _ := cached.group.Do(strings.ToLower(username), func() (any, error) {
		fetched, err := cached.source.LatestRepos(ctx, username)
		if err != nil {
			return nil, err
		}

		if err := cached.cache.Set(ctx, username, fetched, cached.ttl); err != nil && !errors.Is(err, context.Canceled) {
			cached.log.WarnContext(ctx, "github_cache_write_failed", slog.String("username", username), slog.String("error", err.Error()))
		}
		return fetched, nil
	})
	if err != nil {
		metrics.GitHubLookup(metrics.LookupError)
		return nil, err
	}
	metrics.GitHubLookup(metrics.LookupMiss)

	repos, ok := result.([]Repo)
	if !ok {
		return nil, apperr.Internal(fmt.Errorf("unexpected singleflight result %T", result))
	}

	// Callers share the slice; hand each one its own copy.
	copied := make([]Repo, len(repos))
	copy(copied, repos)
	return copied, nil
}
