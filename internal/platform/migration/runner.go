// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the campaign schema in data/migrations with
golang-migrate.

`serve` runs [RunUp] before accepting traffic; the `migrate` command exposes
up, down and version to operators. A dirty database is never touched: the
operator must repair it by hand first.
*/
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // "pgx5" scheme
	_ "github.com/golang-migrate/migrate/v4/source/file"     // "file" scheme
)

// Status is the schema version recorded in the database.
type Status struct {
	Version uint
	Dirty   bool
	Empty   bool // nothing applied yet
}

// RunUp applies every pending migration.
func RunUp(dsn, path string, logger *slog.Logger) error {
	return apply(dsn, path, logger, "up", (*migrate.Migrate).Up)
}

// RunDown reverts steps migrations, at least one.
func RunDown(dsn, path string, steps int, logger *slog.Logger) error {
	steps = max(steps, 1)
	return apply(dsn, path, logger, "down", func(migrator *migrate.Migrate) error {
		return migrator.Steps(-steps)
	})
}

// Version reads the schema version without changing anything.
func Version(dsn, path string, logger *slog.Logger) (Status, error) {
	migrator, release, err := connect(dsn, path, logger)
	if err != nil {
		return Status{}, err
	}
	defer release()

	return status(migrator)
}

func status(migrator *migrate.Migrate) (Status, error) {
	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return Status{Empty: true}, nil
	case err != nil:
		return Status{}, fmt.Errorf("migration: read version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

func apply(dsn, path string, logger *slog.Logger, direction string, step func(*migrate.Migrate) error) error {
	migrator, release, err := connect(dsn, path, logger)
	if err != nil {
		return err
	}
	defer release()

	before, err := status(migrator)
	if err != nil {
		return err
	}
	if before.Dirty {
		return fmt.Errorf("migration: version %d is dirty; fix the schema and force the version first", before.Version)
	}

	err = step(migrator)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_no_change", slog.String("direction", direction), slog.Uint64("version", uint64(before.Version)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: %s: %w", direction, err)
	}

	after, _ := status(migrator)
	logger.Info("migration_applied",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(before.Version)),
		slog.Uint64("to_version", uint64(after.Version)),
	)
	return nil
}

// connect opens a migrator; release logs close failures instead of returning them.
func connect(dsn, path string, logger *slog.Logger) (*migrate.Migrate, func(), error) {
	migrator, err := migrate.New("file://"+path, databaseURL(dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("migration: open: %w", err)
	}
	migrator.Log = slogAdapter{logger: logger}

	release := func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}
	return migrator, release, nil
}

// databaseURL rewrites postgres URLs to the pgx5 scheme golang-migrate
// registers for pgx/v5.
func databaseURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (a slogAdapter) Verbose() bool {
	return a.logger.Enabled(context.Background(), slog.LevelDebug)
}
