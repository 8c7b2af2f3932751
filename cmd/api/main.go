// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the devhub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/devhub/internal/api"
	"github.com/taibuivan/devhub/internal/platform/config"
	"github.com/taibuivan/devhub/internal/platform/constants"
	"github.com/taibuivan/devhub/internal/platform/middleware"
	"github.com/taibuivan/devhub/internal/platform/migration"
	pgstore "github.com/taibuivan/devhub/internal/platform/postgres"
	redisstore "github.com/taibuivan/devhub/internal/platform/redis"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/social/post"
	"github.com/taibuivan/devhub/internal/users/account"
	"github.com/taibuivan/devhub/internal/users/auth"
	"github.com/taibuivan/devhub/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("store_timeout", cfg.StoreTimeout),
	)

	// Misconfiguration should fail fast rather than hang.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Credentials ────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, sec.SystemClock{})
	must(log, err, "initialize token service")
	gate := middleware.NewGate(tokens)

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	accountRepository := auth.NewAccountRepository(pool, cfg.StoreTimeout)
	profileRepository := profile.NewProfileRepository(pool, cfg.StoreTimeout)
	postRepository := post.NewPostRepository(pool, cfg.StoreTimeout)

	github := profile.NewGitHubClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubRequestsPerS, cfg.GitHubBurst, log)
	repos := profile.NewCachedRepoSource(github, profile.NewRepoCache(rdb), constants.GitHubCacheTTL, log)

	authService := auth.NewService(accountRepository, tokens, log)
	profileService := profile.NewService(profileRepository, accountRepository, repos, log)
	postService := post.NewService(postRepository, accountRepository, log)
	accountService := account.NewService(postService, profileService, accountRepository, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, gate.Require),
		Profile:   profile.NewHandler(profileService, accountService, gate.Require),
		Post:      post.NewHandler(postService, gate.Require),
	})

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only for startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
