// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolltable

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListRollTables(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]RollTable, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetRollTable(context context.Context, id int64) (*RollTable, error) {
	return service.repo.FindByID(context, id)
}

// CreateRollTable stores a table with its rows. A taken name is a Conflict.
func (service *Service) CreateRollTable(context context.Context, input CreateInput) (*RollTable, error) {
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	for index := range input.Rows {
		validateRow(validator, rowField(index, ""), &input.Rows[index], true)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, name, input.Rows)
	if err != nil {
		return nil, err
	}

	service.logger.Info("rolltable_created",
		slog.Int64("rolltable_id", created.ID),
		slog.Int("rows", len(created.Rows)),
	)
	return created, nil
}

// UpdateRollTable renames the table and, when rows are sent, replaces them.
func (service *Service) UpdateRollTable(context context.Context, id int64, input UpdateInput) (*RollTable, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLength)
	}
	if input.Rows != nil {
		for index := range *input.Rows {
			row := &(*input.Rows)[index]
			validateRow(validator, rowField(index, ""), row, row.ID == nil)
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("rolltable_updated",
		slog.Int64("rolltable_id", id),
		slog.Int("rows", len(updated.Rows)),
	)
	return updated, nil
}

func (service *Service) DeleteRollTable(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("rolltable_deleted", slog.Int64("rolltable_id", id))
	return nil
}

// AddRow appends a row and returns the whole table.
func (service *Service) AddRow(context context.Context, tableID int64, input RowInput) (*RollTable, error) {
	input.ID = nil

	validator := &validate.Validator{}
	validateRow(validator, "", &input, true)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.AddRow(context, tableID, input)
}

// DeleteRow removes a row and returns the table it belonged to.
func (service *Service) DeleteRow(context context.Context, rowID int64) (*RollTable, error) {
	table, err := service.repo.DeleteRow(context, rowID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("rolltable_row_deleted",
		slog.Int64("rolltable_id", table.ID),
		slog.Int64("row_id", rowID),
	)
	return table, nil
}

// validateRow trims the row in place. prefix is "rows[i]." inside a table
// body and empty for a lone row.
func validateRow(validator *validate.Validator, prefix string, row *RowInput, isNew bool) {
	if row.Name != nil {
		*row.Name = strings.TrimSpace(*row.Name)
		validator.Required(prefix+FieldName, *row.Name).MaxLen(prefix+FieldName, *row.Name, maxNameLength)
	} else if isNew {
		validator.Required(prefix+FieldName, "")
	}

	if row.Category.Present() && !row.Category.IsNull() {
		validator.MaxLen(prefix+FieldCategory, row.Category.Get(), maxCategoryLength)
	}

	if row.ExtraData != nil {
		for index, line := range *row.ExtraData {
			field := fmt.Sprintf("%s%s[%d]", prefix, FieldExtraData, index)
			validator.Required(field, line).MaxLen(field, line, maxDataLength)
		}
	}
}
