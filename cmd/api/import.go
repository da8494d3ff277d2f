// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	pgstore "github.com/taibuivan/tabletop/internal/platform/postgres"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load campaign data",
}

var importEntitiesCmd = &cobra.Command{
	Use:   "entities <file>",
	Short: "Import a bestiary catalog (JSON array or YAML documents)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportEntities,
}

func init() {
	importEntitiesCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from the file extension)")
	importCmd.AddCommand(importEntitiesCmd)
}

func runImportEntities(cmd *cobra.Command, args []string) error {
	cfg, logger, err := load()
	if err != nil {
		return err
	}

	// 1. Format
	raw := importFormat
	if raw == "" {
		raw = strings.TrimPrefix(filepath.Ext(args[0]), ".")
	}
	format, err := entity.ParseFormat(raw)
	if err != nil {
		return fmt.Errorf("cannot tell the format of %s, pass --format: %w", args[0], err)
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	// 2. Store
	pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	repository := entity.NewPostgresRepository(pool, listing.NewComposer(pgstore.NewBunDB(pool)))

	// 3. Import
	report, err := entity.NewImporter(repository, logger).Import(cmd.Context(), file, format)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
