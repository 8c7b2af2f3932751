// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server timing for the HTTP listener.
  - Credential header and issuer.
  - Outbound GitHub client defaults.
  - Probe field names and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "devhub-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication

const (
	// HeaderAuthToken carries the credential on every gated request.
	HeaderAuthToken = "x-auth-token"

	// AuthIssuer is the standard 'iss' claim in issued tokens.
	AuthIssuer = "devhub.api"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # GitHub

const (
	// GitHubRepoLimit is how many repositories the lookup returns.
	GitHubRepoLimit = 5

	// GitHubCacheTTL is how long a lookup result stays in Redis.
	GitHubCacheTTL = 10 * time.Minute
)

// # Probe Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixGitHubRepos = "github:repos:"
)
