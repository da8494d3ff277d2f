// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

// # Catalog Import

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml", case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", apperr.ValidationError(fmt.Sprintf("Unsupported catalog format %q", raw))
}

// Record is one catalog line as it appears in an import file.
type Record struct {
	Name               string   `json:"name" yaml:"name"`
	HitDice            string   `json:"hit_dice" yaml:"hit_dice"`
	AC                 *int     `json:"ac" yaml:"ac"`
	CR                 notation `json:"cr" yaml:"cr"`
	InitiativeModifier int      `json:"initiative_modifier" yaml:"initiative_modifier"`
	IsPC               bool     `json:"is_PC" yaml:"is_pc"`
	Source             *string  `json:"source" yaml:"source"`
	SourcePage         *int     `json:"source_page" yaml:"source_page"`
}

// notation accepts a challenge rating written as a JSON string or number.
type notation string

func (n *notation) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = notation(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*n = notation(number.String())
	return nil
}

// Report summarises an import run.
type Report struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Problems []string `json:"problems,omitempty"`
}

// Importer bulk-loads catalog files into the bestiary.
type Importer struct {
	repo   Repository
	logger *slog.Logger
}

// NewImporter constructs an [Importer].
func NewImporter(repo Repository, logger *slog.Logger) *Importer {
	return &Importer{repo: repo, logger: logger}
}

/*
Import reads a list of records and stores every valid one.

Description: Records that fail to decode or validate (missing name, bad CR,
negative AC) are skipped and reported. The valid remainder is inserted in a
single transaction, so a storage failure imports nothing.

Parameters:
  - context: context.Context
  - reader: io.Reader (The catalog file)
  - format: Format

Returns:
  - Report: Imported and skipped counts with a reason per skipped record
  - error: ValidationError if the file is not a list, or a storage error
*/
func (importer *Importer) Import(context context.Context, reader io.Reader, format Format) (Report, error) {

	// 1. Split the document into raw records
	decoders, err := splitRecords(reader, format)
	if err != nil {
		return Report{}, err
	}

	// 2. Decode and validate each record on its own
	report := Report{}
	batch := make([]Entity, 0, len(decoders))
	for index, decode := range decoders {
		record := Record{}
		if err := decode(&record); err != nil {
			report.skip(index, err.Error())
			continue
		}

		entity, err := newEntity(record.input())
		if err != nil {
			report.skip(index, describe(err))
			continue
		}
		batch = append(batch, *entity)
	}

	// 3. Store the valid records together
	imported, err := importer.repo.CreateMany(context, batch)
	if err != nil {
		return Report{}, err
	}
	report.Imported = imported

	importer.logger.Info("entities_imported",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.String("format", string(format)),
	)
	return report, nil
}

func (record Record) input() CreateInput {
	return CreateInput{
		Name:               strings.TrimSpace(record.Name),
		HitDice:            record.HitDice,
		AC:                 record.AC,
		CR:                 string(record.CR),
		InitiativeModifier: record.InitiativeModifier,
		IsPC:               record.IsPC,
		Source:             record.Source,
		SourcePage:         record.SourcePage,
	}
}

func (report *Report) skip(index int, reason string) {
	report.Skipped++
	report.Problems = append(report.Problems, fmt.Sprintf("record %d: %s", index, reason))
}

// splitRecords returns one decode function per list element. Read failures,
// such as an upload over its byte limit, are returned unwrapped.
func splitRecords(reader io.Reader, format Format) ([]func(target *Record) error, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperr.ValidationError("Catalog is empty")
	}

	switch format {
	case FormatJSON:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, apperr.ValidationError("Catalog must be a JSON list of records")
		}

		decoders := make([]func(target *Record) error, len(raw))
		for index := range raw {
			element := raw[index]
			decoders[index] = func(target *Record) error { return json.Unmarshal(element, target) }
		}
		return decoders, nil

	case FormatYAML:
		var nodes []yaml.Node
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, apperr.ValidationError("Catalog must be a YAML list of records")
		}

		decoders := make([]func(target *Record) error, len(nodes))
		for index := range nodes {
			node := &nodes[index]
			decoders[index] = func(target *Record) error { return node.Decode(target) }
		}
		return decoders, nil
	}

	return nil, apperr.ValidationError(fmt.Sprintf("Unsupported catalog format %q", format))
}

// describe flattens validation details into one line.
func describe(err error) string {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err.Error()
	}

	parts := make([]string, len(appError.Details))
	for index, detail := range appError.Details {
		parts[index] = detail.Field + ": " + detail.Message
	}
	return strings.Join(parts, "; ")
}
