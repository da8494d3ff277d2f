// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package crud implements the single-row persistence mechanics shared by every
campaign store: get-by-id, hydrate-many, insert, sparse update and delete.

A store describes its table once with a [Table] value and keeps only the
queries that are genuinely its own (joins, batches, merges).

	var combats = crud.Table[Combat]{
	    Name:     schema.Combat.Table,
	    Resource: "Combat",
	    Columns:  schema.Combat.Columns(),
	    Scan:     scanCombat,
	    Key:      func(c *Combat) int64 { return c.ID },
	}

Every error leaving this package has already passed through [dberr.Wrap].
*/
package crud

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so every helper runs
// equally inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults
}

// Scope narrows a keyed statement with an extra equality, e.g. combat_id.
type Scope struct {
	Column string
	Value  any
}

// Table describes one relation with a bigserial "id" primary key.
type Table[T any] struct {
	// Name is the SQL table name.
	Name string
	// Resource names the row kind in client-facing errors ("Combat").
	Resource string
	// Columns is the select list, in the order Scan expects.
	Columns []string
	// Scan reads one row produced by the select list.
	Scan func(row pgx.Row) (*T, error)
	// Key returns the identity of a scanned row.
	Key func(item *T) int64
}

// # Reads

// Get fetches one row by id. Missing rows yield apperr NotFound.
func (t Table[T]) Get(context context.Context, querier Querier, id int64, scopes ...Scope) (*T, error) {
	where, args := whereID(id, scopes, 1)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, t.selectList(), t.Name, where)

	item, err := t.Scan(querier.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, t.Resource)
	}
	return item, nil
}

// GetMany hydrates rows for the given ids, preserving the order of ids.
// Ids without a row are skipped.
func (t Table[T]) GetMany(context context.Context, querier Querier, ids []int64) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	found, err := t.Select(context, querier, `WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]T, len(found))
	for index := range found {
		byID[t.Key(&found[index])] = found[index]
	}

	ordered := make([]T, 0, len(found))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// Select runs "SELECT <columns> FROM <table> <suffix>" and scans every row.
//
// suffix carries the WHERE/ORDER BY clauses with $n placeholders for args.
func (t Table[T]) Select(context context.Context, querier Querier, suffix string, args ...any) ([]T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s %s`, t.selectList(), t.Name, suffix)

	rows, err := querier.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, t.Resource)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := t.Scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, t.Resource)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, t.Resource)
	}
	return items, nil
}

// Exists reports whether a row with the given id exists.
func (t Table[T]) Exists(context context.Context, querier Querier, id int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, t.Name)
	if err := querier.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, t.Resource)
	}
	return exists, nil
}

// # Writes

// Insert creates one row from the patch and returns it as stored.
// An empty patch inserts a row made only of column defaults.
func (t Table[T]) Insert(context context.Context, querier Querier, patch *Patch) (*T, error) {
	query, args := t.buildInsert(patch)

	item, err := t.Scan(querier.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, t.Resource)
	}
	return item, nil
}

// QueueInsert adds the INSERT for patch to batch. The caller drains the results.
func (t Table[T]) QueueInsert(batch *pgx.Batch, patch *Patch) {
	query, args := t.buildInsert(patch)
	batch.Queue(query, args...)
}

// Update applies a sparse update to one row and returns it as stored.
// Only the columns set on patch are written; an empty patch is a plain Get.
func (t Table[T]) Update(context context.Context, querier Querier, id int64, patch *Patch, scopes ...Scope) (*T, error) {
	if patch.Empty() {
		return t.Get(context, querier, id, scopes...)
	}

	query, args := t.buildUpdate(id, patch, scopes)

	item, err := t.Scan(querier.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, t.Resource)
	}
	return item, nil
}

// Delete removes one row. It reports NotFound when nothing matched.
func (t Table[T]) Delete(context context.Context, querier Querier, id int64, scopes ...Scope) error {
	affected, err := t.DeleteAffected(context, querier, id, scopes...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound(t.Resource)
	}
	return nil
}

// DeleteAffected removes at most one row and returns how many rows went away.
func (t Table[T]) DeleteAffected(context context.Context, querier Querier, id int64, scopes ...Scope) (int64, error) {
	where, args := whereID(id, scopes, 1)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s`, t.Name, where)

	tag, err := querier.Exec(context, query, args...)
	if err != nil {
		return 0, dberr.Wrap(err, t.Resource)
	}
	return tag.RowsAffected(), nil
}

// # Statement builders

func (t Table[T]) selectList() string {
	return strings.Join(t.Columns, ", ")
}

func (t Table[T]) buildInsert(patch *Patch) (string, []any) {
	if patch.Empty() {
		return fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`, t.Name, t.selectList()), nil
	}

	placeholders := make([]string, len(patch.columns))
	for index := range patch.columns {
		placeholders[index] = fmt.Sprintf("$%d", index+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		t.Name,
		strings.Join(patch.columns, ", "),
		strings.Join(placeholders, ", "),
		t.selectList(),
	)
	return query, append([]any(nil), patch.values...)
}

func (t Table[T]) buildUpdate(id int64, patch *Patch, scopes []Scope) (string, []any) {
	var builder strings.Builder
	args := make([]any, 0, len(patch.values)+1+len(scopes))
	argID := 1

	builder.WriteString(fmt.Sprintf("UPDATE %s SET ", t.Name))
	for index, column := range patch.columns {
		if index > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, patch.values[index])
		argID++
	}

	where, whereArgs := whereID(id, scopes, argID)
	builder.WriteString(" WHERE ")
	builder.WriteString(where)
	builder.WriteString(" RETURNING ")
	builder.WriteString(t.selectList())

	return builder.String(), append(args, whereArgs...)
}

// whereID renders "id = $n [AND col = $n+1 ...]" starting at argument firstArg.
func whereID(id int64, scopes []Scope, firstArg int) (string, []any) {
	var builder strings.Builder
	args := []any{id}

	builder.WriteString(fmt.Sprintf("id = $%d", firstArg))
	for index, scope := range scopes {
		builder.WriteString(fmt.Sprintf(" AND %s = $%d", scope.Column, firstArg+index+1))
		args = append(args, scope.Value)
	}

	return builder.String(), args
}
