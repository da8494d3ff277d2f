// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/tabletop/internal/api"
	"github.com/taibuivan/tabletop/internal/auth"
	"github.com/taibuivan/tabletop/internal/core/collection"
	"github.com/taibuivan/tabletop/internal/core/combat"
	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/core/image"
	"github.com/taibuivan/tabletop/internal/core/message"
	"github.com/taibuivan/tabletop/internal/core/rolltable"
	"github.com/taibuivan/tabletop/internal/core/session"
	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/broadcast"
	"github.com/taibuivan/tabletop/internal/platform/config"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/dice"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/metrics"
	"github.com/taibuivan/tabletop/internal/platform/middleware"
	"github.com/taibuivan/tabletop/internal/platform/migration"
	pgstore "github.com/taibuivan/tabletop/internal/platform/postgres"
	redisstore "github.com/taibuivan/tabletop/internal/platform/redis"
	"github.com/taibuivan/tabletop/internal/platform/sec"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
}

/*
runServe starts the server.

Startup sequence:
 1. Configuration and logger
 2. PostgreSQL pool and Redis client
 3. Migrations (idempotent)
 4. Token service when game master auth is configured
 5. Domain wiring
 6. HTTP server with graceful shutdown
*/
func runServe(cmd *cobra.Command, _ []string) error {

	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, logger, err := load()
	if err != nil {
		return err
	}

	logger.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("hit_point_mode", string(cfg.HitPointMode)),
	)

	// Root context for startup and background workers.
	root, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(root, constants.ShutdownTimeout)
	defer startupCancel()

	// ── 2. Connections ────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			logger.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	if !skipMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return err
		}
	}

	// ── 4. Authentication ─────────────────────────────────────────────────
	var verifier middleware.TokenVerifier
	var tokens *sec.TokenService
	if cfg.AuthEnabled() {
		tokens, err = sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
		if err != nil {
			return err
		}
		verifier = tokens
	} else {
		logger.Warn("gm_auth_disabled", slog.String("environment", cfg.Environment))
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	collector := metrics.New()
	handlers := wire(cfg, pool, rdb, tokens, collector, logger)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		Broker:   func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, logger)

	server := api.NewServer(root, cfg, logger, verifier, collector, handlers)

	// ── 6. Serve until signalled ──────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-root.Done():
		logger.Info("shutdown_signal_received")
	case err := <-serverErr:
		logger.Error("server_failed", slog.Any("error", err))
		return err
	}

	logger.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		logger.Error("shutdown_failed", slog.Any("error", err))
		return err
	}

	logger.Info("server_stopped_cleanly")
	return nil
}

// wire builds every repository, service and handler. All wiring is explicit
// constructor injection.
func wire(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client, tokens *sec.TokenService, collector *metrics.Metrics, logger *slog.Logger) api.Handlers {
	composer := listing.NewComposer(pgstore.NewBunDB(pool))
	guard := api.Guard(cfg)

	// Bestiary and combat
	entityRepository := entity.NewPostgresRepository(pool, composer)
	entityService := entity.NewService(entityRepository, logger)
	combatService := combat.NewService(
		combat.NewPostgresRepository(pool, composer),
		entityService,
		dice.NewRoller(nil),
		cfg.HitPointMode,
		logger,
	)

	// Classification and images
	tagService := tag.NewService(tag.NewPostgresRepository(pool, composer), cfg.MatchLimit, logger)
	collectionService := collection.NewService(collection.NewPostgresRepository(pool, composer), logger)
	tagHandler := tag.NewHandler(tagService, guard)
	collectionHandler := collection.NewHandler(collectionService, guard)
	imageService := image.NewService(image.NewPostgresRepository(pool, composer), tagService, logger)

	// Live sessions
	sessionService := session.NewService(
		session.NewPostgresRepository(pool),
		broadcast.NewPublisher(rdb),
		collector,
		logger,
	)

	return api.Handlers{
		Auth:       auth.NewHandler(auth.NewService(cfg.GMPasswordHash, tokens, cfg.TokenTTL, logger)),
		Entity:     entity.NewHandler(entityService, entity.NewImporter(entityRepository, logger), guard),
		Combat:     combat.NewHandler(combatService, guard),
		Tag:        tagHandler,
		Collection: collectionHandler,
		Image:      image.NewHandler(imageService, guard, tagHandler.ImageRoutes(), collectionHandler.ImageRoutes()),
		Message:    message.NewHandler(message.NewService(message.NewPostgresRepository(pool, composer), logger), guard),
		Session:    session.NewHandler(sessionService, guard),
		RollTable:  rolltable.NewHandler(rolltable.NewService(rolltable.NewPostgresRepository(pool, composer), logger), guard),
	}
}
