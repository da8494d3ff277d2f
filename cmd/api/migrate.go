// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tabletop/internal/platform/migration"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := load()
		if err != nil {
			return err
		}
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := load()
		if err != nil {
			return err
		}
		return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, downSteps, logger)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := load()
		if err != nil {
			return err
		}

		status, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, logger)
		if err != nil {
			return err
		}

		switch {
		case status.Empty:
			fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
		case status.Dirty:
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty)\n", status.Version)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", status.Version)
		}
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}
