// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/constants"
)

// RedisRepoCache implements [RepoCache] using Redis.
type RedisRepoCache struct {
	client *redis.Client
}

// NewRepoCache creates a new Redis-backed [RepoCache].
func NewRepoCache(client *redis.Client) *RedisRepoCache {
	return &RedisRepoCache{client: client}
}

/*
Set stores the repositories of username for ttl.

Returns:
  - error: Encoding or connectivity errors
*/
func (cache *RedisRepoCache) Set(ctx context.Context, username string, repos []Repo, ttl time.Duration) error {
	payload, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("redis_repo_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, repoKey(username), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_repo_cache_set_failed: %w", err)
	}

	return nil
}

/*
Get returns the cached repositories of username.

Returns:
  - []Repo: The cached lookup
  - error: apperr.NotFound on a miss or expiry, otherwise connectivity errors
*/
func (cache *RedisRepoCache) Get(ctx context.Context, username string) ([]Repo, error) {
	payload, err := cache.client.Get(ctx, repoKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Cached repositories")
		}
		return nil, fmt.Errorf("redis_repo_cache_get_failed: %w", err)
	}

	var repos []Repo
	if err := json.Unmarshal(payload, &repos); err != nil {
		return nil, fmt.Errorf("redis_repo_cache_decode_failed: %w", err)
	}

	return repos, nil
}

// GitHub logins are case-insensitive.
func repoKey(username string) string {
	return constants.RedisPrefixGitHubRepos + strings.ToLower(username)
}
