// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package classify implements the many-to-many membership between images and a
classifier (tags, collections) over a two-column join table.

# Single-row semantics

Apply and Remove must touch exactly one join row, and both report every
other outcome as a Conflict:

  - applying an existing pair (unique violation),
  - applying with an unknown image or classifier (foreign key violation),
  - removing a pair that is not there (zero rows affected).

# Set semantics

Set makes the image's membership equal to the given ids, silently dropping
ids that name no classifier. It needs a transaction.
*/
package classify

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
)

// ResourceImage names the image side in client-facing errors.
const ResourceImage = "Image"

// Link describes one join table.
type Link struct {
	// Table is the join table ("image_tags").
	Table string
	// ImageColumn and OwnerColumn are its two keys.
	ImageColumn string
	OwnerColumn string

	// Owners and Images are the tables the keys point at.
	Owners string
	Images string

	// Resource names the classifier in client-facing errors ("Tag").
	Resource string
}

// # Single pairs

// Apply links one image to one classifier.
func (l Link) Apply(context context.Context, querier crud.Querier, imageID, ownerID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, l.Table, l.ImageColumn, l.OwnerColumn)

	_, err := querier.Exec(context, query, imageID, ownerID)
	switch {
	case err == nil:
		return nil
	case dberr.IsUniqueViolation(err):
		return apperr.Conflict(fmt.Sprintf("Image already has this %s", l.Resource)).WithCause(err)
	case dberr.IsForeignKeyViolation(err):
		return apperr.Conflict(fmt.Sprintf("Image or %s does not exist", l.Resource)).WithCause(err)
	default:
		return dberr.Wrap(err, l.Resource)
	}
}

// Remove unlinks one image from one classifier.
func (l Link) Remove(context context.Context, querier crud.Querier, imageID, ownerID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, l.Table, l.ImageColumn, l.OwnerColumn)

	result, err := querier.Exec(context, query, imageID, ownerID)
	if err != nil {
		return dberr.Wrap(err, l.Resource)
	}
	if result.RowsAffected() != 1 {
		return apperr.Conflict(fmt.Sprintf("Image does not have this %s", l.Resource))
	}
	return nil
}

// # Whole sets

/*
Set replaces the membership of one image.

Description: Unknown classifier ids are filtered out; the pairs already
present are left untouched, missing ones are detached and new ones attached.

Parameters:
  - context: context.Context
  - transaction: pgx.Tx
  - imageID: int64
  - ownerIDs: []int64

Returns:
  - []int64: The classifier ids the image ends up with, ascending
  - error: NotFound when the image does not exist
*/
func (l Link) Set(context context.Context, transaction pgx.Tx, imageID int64, ownerIDs []int64) ([]int64, error) {
	// 1. The image must exist and stays locked until commit
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, l.Images)
	var locked int64
	if err := transaction.QueryRow(context, query, imageID).Scan(&locked); err != nil {
		return nil, dberr.Wrap(err, ResourceImage)
	}

	// 2. Keep only ids that name a classifier
	query = fmt.Sprintf(`SELECT id FROM %s WHERE id = ANY($1) ORDER BY id`, l.Owners)
	kept, err := l.ids(context, transaction, query, nonNil(ownerIDs))
	if err != nil {
		return nil, err
	}

	// 3. Detach what is no longer wanted
	query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND NOT (%s = ANY($2))`, l.Table, l.ImageColumn, l.OwnerColumn)
	if _, err := transaction.Exec(context, query, imageID, kept); err != nil {
		return nil, dberr.Wrap(err, l.Resource)
	}

	// 4. Attach the rest; pairs already present are skipped
	query = fmt.Sprintf(`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		l.Table, l.ImageColumn, l.OwnerColumn)
	if _, err := transaction.Exec(context, query, imageID, kept); err != nil {
		return nil, dberr.Wrap(err, l.Resource)
	}

	return kept, nil
}

// OwnersOf lists the classifier ids linked to an image, ascending.
func (l Link) OwnersOf(context context.Context, querier crud.Querier, imageID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`, l.OwnerColumn, l.Table, l.ImageColumn, l.OwnerColumn)
	return l.ids(context, querier, query, imageID)
}

// Orphans lists the classifier ids no image uses, ascending.
func (l Link) Orphans(context context.Context, querier crud.Querier) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT o.id
		FROM %s AS o
		LEFT JOIN %s AS l ON l.%s = o.id
		GROUP BY o.id
		HAVING count(l.%s) = 0
		ORDER BY o.id`,
		l.Owners, l.Table, l.OwnerColumn, l.ImageColumn,
	)
	return l.ids(context, querier, query)
}

func (l Link) ids(context context.Context, querier crud.Querier, query string, args ...any) ([]int64, error) {
	rows, err := querier.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, l.Resource)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, l.Resource)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
