// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the campaign database.
//
// Stores write through pgx directly; list queries are composed with bun on
// top of the very same pool (see [NewBunDB]), so both share one set of
// connections and one statement timeout.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/taibuivan/tabletop/internal/platform/constants"
)

// A table is a handful of browsers, so the pool stays small.
const (
	poolMaxConns    = 10
	poolMinConns    = 1
	connLifetime    = time.Hour
	connIdleTime    = 10 * time.Minute
	dialTimeout     = 5 * time.Second
	readinessBudget = 2 * time.Second
)

// statementTimeout matches the HTTP request deadline; a query never outlives
// the request that issued it.
var statementTimeout = fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())

// NewPool parses dsn, opens a pool and verifies it answers.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnLifetime = connLifetime
	config.MaxConnIdleTime = connIdleTime
	config.ConnConfig.ConnectTimeout = dialTimeout
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, statementTimeout)
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_connected",
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// Ping is the readiness check for the database.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, readinessBudget)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// NewBunDB wraps the pool in a bun.DB for query composition. Closing the
// returned DB leaves the pool open.
func NewBunDB(pool *pgxpool.Pool) *bun.DB {
	return bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
}
