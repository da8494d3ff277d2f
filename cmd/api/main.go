// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command api runs the campaign backend and its maintenance tasks.

	api serve                         start the HTTP server
	api migrate up|down|version       manage the database schema
	api import entities <file>        bulk-load a bestiary catalog
	api gm-password                   hash a game master password from stdin

Every subcommand reads its settings from the environment; see [config.Config].
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tabletop/internal/platform/config"
	"github.com/taibuivan/tabletop/internal/platform/constants"
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Tabletop campaign backend",
	Long:          `Serves combats, bestiary, images, tags, sessions and roll tables for a game master and their table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(passwordCmd)
}

// newLogger builds the process logger: JSON on stdout, debug level on request.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)

	return logger
}

// load reads the configuration and the logger that goes with it.
func load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.Debug), nil
}
