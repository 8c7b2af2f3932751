// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the devhub API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document store (PostgreSQL with JSONB aggregates)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// StoreTimeout bounds every load/save; exceeding it yields STORAGE_UNAVAILABLE.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	// Key-Value Cache (Redis) for third-party lookups
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// JWTSecret signs and verifies every credential.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// GitHub repository lookup
	GitHubAPIURL       string  `env:"GITHUB_API_URL"        envDefault:"https://api.github.com"`
	GitHubToken        string  `env:"GITHUB_TOKEN"`
	GitHubRequestsPerS float64 `env:"GITHUB_REQUESTS_PER_S" envDefault:"1"`
	GitHubBurst        int     `env:"GITHUB_BURST"          envDefault:"5"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("config: STORE_TIMEOUT must be positive, got %s", cfg.StoreTimeout)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginAllowed reports whether a browser origin may call the API.
func (c *Config) OriginAllowed(origin string) bool {
	if c.IsDevelopment() {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
