// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package testdb starts a throwaway PostgreSQL for store integration tests.

One container is started per test binary and migrated with the real
migrations; every call to [New] truncates all tables first, so tests start
from an empty schema with fresh id sequences.

Tests are skipped under -short or when Docker is not reachable.
*/
package testdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/taibuivan/tabletop/internal/platform/migration"
	platformpg "github.com/taibuivan/tabletop/internal/platform/postgres"
)

const image = "postgres:16-alpine"

// DB bundles the pgx pool and the bun handle over it.
type DB struct {
	Pool *pgxpool.Pool
	Bun  *bun.DB
}

var (
	once     sync.Once
	shared   string
	startErr error
	// unavailable is set when Docker itself could not be used.
	unavailable bool
)

// New returns a migrated, empty database or skips the test.
func New(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}

	once.Do(func() { shared, unavailable, startErr = start() })
	if startErr != nil && unavailable {
		t.Skipf("postgres container unavailable: %v", startErr)
	}
	if startErr != nil {
		t.Fatalf("testdb: %v", startErr)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, shared)
	if err != nil {
		t.Fatalf("testdb: connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := truncate(ctx, pool); err != nil {
		t.Fatalf("testdb: truncate: %v", err)
	}

	return &DB{Pool: pool, Bun: platformpg.NewBunDB(pool)}
}

// start runs the container and applies migrations, returning the DSN.
func start() (dsn string, unavailable bool, err error) {
	defer func() {
		// testcontainers panics when no Docker host can be found
		if recovered := recover(); recovered != nil {
			dsn, unavailable, err = "", true, fmt.Errorf("%v", recovered)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("tabletop"),
		postgres.WithUsername("tabletop"),
		postgres.WithPassword("tabletop"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", true, fmt.Errorf("start container: %w", err)
	}

	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", false, fmt.Errorf("connection string: %w", err)
	}

	migrationsPath, err := migrationsDir()
	if err != nil {
		return "", false, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := migration.RunUp(dsn, migrationsPath, logger); err != nil {
		return "", false, err
	}

	return dsn, false, nil
}

func truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE rolltable_row_data, rolltable_rows, rolltables, sessions, messages,
		         image_collections, collections, image_tags, tags,
		         participants, combats, entities, images
		RESTART IDENTITY CASCADE`)
	return err
}

// migrationsDir resolves data/migrations relative to this source file.
func migrationsDir() (string, error) {
	_, callerFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("testdb: could not resolve caller path")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(callerFile), "..", "..", "..", "data", "migrations")), nil
}
