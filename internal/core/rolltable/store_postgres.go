// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolltable

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var tables = crud.Table[RollTable]{
	Name:     schema.RollTable.Table,
	Resource: ResourceRollTable,
	Columns:  schema.RollTable.Columns(),
	Scan:     scanTable,
	Key:      func(table *RollTable) int64 { return table.ID },
}

var rows = crud.Table[Row]{
	Name:     schema.RollTableRow.Table,
	Resource: ResourceRow,
	Columns:  schema.RollTableRow.Columns(),
	Scan:     scanRow,
	Key:      func(row *Row) int64 { return row.ID },
}

func scanTable(row pgx.Row) (*RollTable, error) {
	table := &RollTable{Rows: []Row{}}
	if err := row.Scan(&table.ID, &table.Name); err != nil {
		return nil, err
	}
	return table, nil
}

func scanRow(scanner pgx.Row) (*Row, error) {
	row := &Row{ExtraData: []string{}}
	if err := scanner.Scan(&row.ID, &row.RollTableID, &row.Name, &row.DisplayName, &row.Category); err != nil {
		return nil, err
	}
	return row, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

// # Reads

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]RollTable, int, error) {
	query := repository.composer.
		Filter(listing.KindRollTable, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]RollTable, error) {
	return loadMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*RollTable, error) {
	return load(context, repository.pool, id)
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, name string, inputs []RowInput) (*RollTable, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	created, err := tables.Insert(context, transaction, crud.NewPatch().Put(schema.RollTable.Name, name))
	if err != nil {
		return nil, err
	}

	for _, input := range inputs {
		if err := insertRow(context, transaction, created.ID, input); err != nil {
			return nil, err
		}
	}

	result, err := load(context, transaction, created.ID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit rolltable: %w", err)
	}
	return result, nil
}

/*
Update renames the table and replaces its rows in one transaction.

Description: With Rows present:

 1. A row with an ID is updated in place; the ID must belong to this table.
 2. A row without an ID is created.
 3. Rows of the table that were not listed are deleted.

Returns:
  - *RollTable: The table as stored
  - error: NotFound, Conflict on a taken name, ValidationError on a foreign row id
*/
func (repository *PostgresRepository) Update(context context.Context, id int64, input UpdateInput) (*RollTable, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := lock(context, transaction, id); err != nil {
		return nil, err
	}

	patch := crud.Set(crud.NewPatch(), schema.RollTable.Name, input.Name)
	if _, err := tables.Update(context, transaction, id, patch); err != nil {
		return nil, err
	}

	if input.Rows != nil {
		if err := replaceRows(context, transaction, id, *input.Rows); err != nil {
			return nil, err
		}
	}

	result, err := load(context, transaction, id)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit rolltable: %w", err)
	}
	return result, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return tables.Delete(context, repository.pool, id)
}

func (repository *PostgresRepository) AddRow(context context.Context, tableID int64, input RowInput) (*RollTable, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := lock(context, transaction, tableID); err != nil {
		return nil, err
	}
	if err := insertRow(context, transaction, tableID, input); err != nil {
		return nil, err
	}

	result, err := load(context, transaction, tableID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit row: %w", err)
	}
	return result, nil
}

func (repository *PostgresRepository) DeleteRow(context context.Context, rowID int64) (*RollTable, error) {
	var tableID int64
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.RollTableRow.Table, schema.RollTableRow.ID, schema.RollTableRow.RollTableID)

	if err := repository.pool.QueryRow(context, query, rowID).Scan(&tableID); err != nil {
		return nil, dberr.Wrap(err, ResourceRow)
	}
	return load(context, repository.pool, tableID)
}

// # Helpers

func lock(context context.Context, transaction pgx.Tx, id int64) error {
	locked, err := tables.Select(context, transaction,
		fmt.Sprintf(`WHERE %s = $1 FOR UPDATE`, schema.RollTable.ID), id)
	if err != nil {
		return err
	}
	if len(locked) == 0 {
		return apperr.NotFound(ResourceRollTable)
	}
	return nil
}

func load(context context.Context, querier crud.Querier, id int64) (*RollTable, error) {
	found, err := loadMany(context, querier, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperr.NotFound(ResourceRollTable)
	}
	return &found[0], nil
}

// loadMany hydrates tables with their rows and the rows' extra data.
func loadMany(context context.Context, querier crud.Querier, ids []int64) ([]RollTable, error) {
	found, err := tables.GetMany(context, querier, ids)
	if err != nil || len(found) == 0 {
		return found, err
	}

	// 1. Rows of every table
	tableRows, err := rows.Select(context, querier,
		fmt.Sprintf(`WHERE %s = ANY($1) ORDER BY %s`, schema.RollTableRow.RollTableID, schema.RollTableRow.ID), ids)
	if err != nil {
		return nil, err
	}

	// 2. Extra data of every row
	rowIDs := make([]int64, len(tableRows))
	for index, row := range tableRows {
		rowIDs[index] = row.ID
	}
	data, err := extraData(context, querier, rowIDs)
	if err != nil {
		return nil, err
	}

	// 3. Assemble
	byTable := make(map[int64][]Row, len(found))
	for _, row := range tableRows {
		if lines, ok := data[row.ID]; ok {
			row.ExtraData = lines
		}
		byTable[row.RollTableID] = append(byTable[row.RollTableID], row)
	}
	for index := range found {
		if assembled, ok := byTable[found[index].ID]; ok {
			found[index].Rows = assembled
		}
	}
	return found, nil
}

func extraData(context context.Context, querier crud.Querier, rowIDs []int64) (map[int64][]string, error) {
	data := make(map[int64][]string)
	if len(rowIDs) == 0 {
		return data, nil
	}

	query := fmt.Sprintf(`SELECT %[2]s, %[3]s FROM %[1]s WHERE %[2]s = ANY($1) ORDER BY %[4]s`,
		schema.RollTableRowData.Table, schema.RollTableRowData.RowID,
		schema.RollTableRowData.Data, schema.RollTableRowData.ID)

	result, err := querier.Query(context, query, rowIDs)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceRow)
	}
	defer result.Close()

	for result.Next() {
		var rowID int64
		var line string
		if err := result.Scan(&rowID, &line); err != nil {
			return nil, dberr.Wrap(err, ResourceRow)
		}
		data[rowID] = append(data[rowID], line)
	}
	return data, dberr.Wrap(result.Err(), ResourceRow)
}

func insertRow(context context.Context, querier crud.Querier, tableID int64, input RowInput) error {
	name := ""
	if input.Name != nil {
		name = *input.Name
	}

	patch := crud.NewPatch().
		Put(schema.RollTableRow.RollTableID, tableID).
		Put(schema.RollTableRow.Name, name).
		Put(schema.RollTableRow.DisplayName, SortableName(name))
	crud.SetOptional(patch, schema.RollTableRow.Category, input.Category)

	created, err := rows.Insert(context, querier, patch)
	if err != nil {
		return err
	}

	if input.ExtraData != nil {
		return writeData(context, querier, created.ID, *input.ExtraData)
	}
	return nil
}

// writeData replaces the extra data lines of a row.
func writeData(context context.Context, querier crud.Querier, rowID int64, lines []string) error {
	wipe := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RollTableRowData.Table, schema.RollTableRowData.RowID)
	if _, err := querier.Exec(context, wipe, rowID); err != nil {
		return dberr.Wrap(err, ResourceRow)
	}
	if len(lines) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::text[])`,
		schema.RollTableRowData.Table, schema.RollTableRowData.RowID, schema.RollTableRowData.Data)
	if _, err := querier.Exec(context, insert, rowID, lines); err != nil {
		return dberr.Wrap(err, ResourceRow)
	}
	return nil
}

func replaceRows(context context.Context, transaction pgx.Tx, tableID int64, inputs []RowInput) error {
	kept := make([]int64, 0, len(inputs))
	scope := crud.Scope{Column: schema.RollTableRow.RollTableID, Value: tableID}

	var created []RowInput
	for index, input := range inputs {
		if input.ID == nil {
			created = append(created, input)
			continue
		}

		patch := crud.NewPatch()
		if input.Name != nil {
			patch.Put(schema.RollTableRow.Name, *input.Name).
				Put(schema.RollTableRow.DisplayName, SortableName(*input.Name))
		}
		crud.SetOptional(patch, schema.RollTableRow.Category, input.Category)

		if _, err := rows.Update(context, transaction, *input.ID, patch, scope); err != nil {
			if apperr.HasCode(err, apperr.CodeNotFound) {
				return apperr.ValidationError("Row does not belong to this table",
					apperr.FieldError{Field: rowField(index, FieldRowID), Message: "Unknown row"})
			}
			return err
		}
		if input.ExtraData != nil {
			if err := writeData(context, transaction, *input.ID, *input.ExtraData); err != nil {
				return err
			}
		}
		kept = append(kept, *input.ID)
	}

	drop := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND NOT (%s = ANY($2))`,
		schema.RollTableRow.Table, schema.RollTableRow.RollTableID, schema.RollTableRow.ID)
	if _, err := transaction.Exec(context, drop, tableID, kept); err != nil {
		return dberr.Wrap(err, ResourceRow)
	}

	for _, input := range created {
		if err := insertRow(context, transaction, tableID, input); err != nil {
			return err
		}
	}
	return nil
}
