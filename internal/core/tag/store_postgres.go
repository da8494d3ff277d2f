// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/classify"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var tags = crud.Table[Tag]{
	Name:     schema.Tag.Table,
	Resource: ResourceTag,
	Columns:  schema.Tag.Columns(),
	Scan:     scanTag,
	Key:      func(tag *Tag) int64 { return tag.ID },
}

var imageTags = classify.Link{
	Table:       schema.ImageTag.Table,
	ImageColumn: schema.ImageTag.ImageID,
	OwnerColumn: schema.ImageTag.TagID,
	Owners:      schema.Tag.Table,
	Images:      schema.Image.Table,
	Resource:    ResourceTag,
}

func scanTag(row pgx.Row) (*Tag, error) {
	tag := &Tag{}
	if err := row.Scan(&tag.ID, &tag.Label); err != nil {
		return nil, err
	}
	return tag, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

// # Tags

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Tag, int, error) {
	query := repository.composer.
		Filter(listing.KindTag, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]Tag, error) {
	return tags.GetMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Tag, error) {
	return tags.Get(context, repository.pool, id)
}

func (repository *PostgresRepository) FindByLabel(context context.Context, label string) (*Tag, error) {
	found, err := tags.Select(context, repository.pool, fmt.Sprintf(`WHERE %s = $1`, schema.Tag.Label), label)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperr.NotFound(ResourceTag)
	}
	return &found[0], nil
}

func (repository *PostgresRepository) Create(context context.Context, label string) (*Tag, error) {
	return tags.Insert(context, repository.pool, crud.NewPatch().Put(schema.Tag.Label, label))
}

func (repository *PostgresRepository) Rename(context context.Context, id int64, label string) (*Tag, error) {
	return tags.Update(context, repository.pool, id, crud.NewPatch().Put(schema.Tag.Label, label))
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return tags.Delete(context, repository.pool, id)
}

func (repository *PostgresRepository) Orphans(context context.Context) ([]Tag, error) {
	ids, err := imageTags.Orphans(context, repository.pool)
	if err != nil {
		return nil, err
	}
	return tags.GetMany(context, repository.pool, ids)
}

/*
Merge folds source into target.

Description: In one transaction holding both tag rows:

 1. Images carrying only source are moved to target.
 2. Images carrying both keep their target link; the source link is dropped.

Source itself is kept.

Returns:
  - MergeReport: Moved and dropped link counts
  - error: NotFound when either tag is missing
*/
func (repository *PostgresRepository) Merge(context context.Context, targetID, sourceID int64) (MergeReport, error) {
	var report MergeReport

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return report, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Lock both tags
	locked, err := tags.Select(context, transaction,
		fmt.Sprintf(`WHERE %s = ANY($1) FOR UPDATE`, schema.Tag.ID),
		[]int64{targetID, sourceID},
	)
	if err != nil {
		return report, err
	}
	if len(locked) != 2 {
		return report, apperr.NotFound(ResourceTag)
	}

	// 2. Move the links that do not collide
	move := fmt.Sprintf(`
		UPDATE %[1]s SET %[3]s = $1
		WHERE %[3]s = $2
		  AND NOT EXISTS (
		      SELECT 1 FROM %[1]s AS existing
		      WHERE existing.%[2]s = %[1]s.%[2]s AND existing.%[3]s = $1
		  )`,
		schema.ImageTag.Table, schema.ImageTag.ImageID, schema.ImageTag.TagID,
	)
	moved, err := transaction.Exec(context, move, targetID, sourceID)
	if err != nil {
		return report, dberr.Wrap(err, ResourceTag)
	}

	// 3. Whatever still points at source was a duplicate
	drop := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ImageTag.Table, schema.ImageTag.TagID)
	dropped, err := transaction.Exec(context, drop, sourceID)
	if err != nil {
		return report, dberr.Wrap(err, ResourceTag)
	}

	if err := transaction.Commit(context); err != nil {
		return report, fmt.Errorf("postgres: failed to commit merge: %w", err)
	}

	report.Moved = moved.RowsAffected()
	report.Dropped = dropped.RowsAffected()
	return report, nil
}

// # Image Tagging

func (repository *PostgresRepository) Apply(context context.Context, imageID, tagID int64) error {
	return imageTags.Apply(context, repository.pool, imageID, tagID)
}

func (repository *PostgresRepository) Remove(context context.Context, imageID, tagID int64) error {
	return imageTags.Remove(context, repository.pool, imageID, tagID)
}

func (repository *PostgresRepository) SetTags(context context.Context, imageID int64, tagIDs []int64) ([]Tag, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	kept, err := imageTags.Set(context, transaction, imageID, tagIDs)
	if err != nil {
		return nil, err
	}

	result, err := tags.GetMany(context, transaction, kept)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit tags: %w", err)
	}
	return result, nil
}

func (repository *PostgresRepository) TagsOf(context context.Context, imageID int64) ([]Tag, error) {
	ids, err := imageTags.OwnersOf(context, repository.pool, imageID)
	if err != nil {
		return nil, err
	}
	return tags.GetMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) RankImages(context context.Context, tagIDs []int64, limit int) ([]Match, error) {
	query := fmt.Sprintf(`
		SELECT %[2]s, count(*) AS matches, array_agg(%[3]s ORDER BY %[3]s)
		FROM %[1]s
		WHERE %[3]s = ANY($1)
		GROUP BY %[2]s
		ORDER BY matches DESC, %[2]s
		LIMIT $2`,
		schema.ImageTag.Table, schema.ImageTag.ImageID, schema.ImageTag.TagID,
	)

	rows, err := repository.pool.Query(context, query, tagIDs, limit)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceTag)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var match Match
		if err := rows.Scan(&match.ImageID, &match.MatchCount, &match.TagIDs); err != nil {
			return nil, dberr.Wrap(err, ResourceTag)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, ResourceTag)
	}
	return matches, nil
}
