// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var images = crud.Table[Image]{
	Name:     schema.Image.Table,
	Resource: ResourceImage,
	Columns:  schema.Image.Columns(),
	Scan:     scanImage,
	Key:      func(image *Image) int64 { return image.ID },
}

func scanImage(row pgx.Row) (*Image, error) {
	image := &Image{Tags: []tag.Tag{}}
	var kind string
	err := row.Scan(
		&image.ID, &image.Path, &image.Name,
		&image.FocusX, &image.FocusY, &image.Hash,
		&image.DimensionX, &image.DimensionY, &kind, &image.Palette,
	)
	if err != nil {
		return nil, err
	}
	image.Type = Type(kind)
	return image, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Image, int, error) {
	query := repository.composer.
		Filter(listing.KindImage, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.FindMany)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Image, error) {
	found, err := repository.FindMany(context, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperr.NotFound(ResourceImage)
	}
	return &found[0], nil
}

func (repository *PostgresRepository) FindMany(context context.Context, ids []int64) ([]Image, error) {
	found, err := images.GetMany(context, repository.pool, ids)
	if err != nil {
		return nil, err
	}
	if err := repository.attachTags(context, found); err != nil {
		return nil, err
	}
	return found, nil
}

func (repository *PostgresRepository) Random(context context.Context, kind Type) (*Image, error) {
	picked, err := images.Select(context, repository.pool,
		fmt.Sprintf(`WHERE %s = $1 ORDER BY random() LIMIT 1`, schema.Image.Type), string(kind))
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, apperr.NotFound(ResourceImage)
	}
	if err := repository.attachTags(context, picked); err != nil {
		return nil, err
	}
	return &picked[0], nil
}

func (repository *PostgresRepository) Create(context context.Context, input CreateInput) (*Image, error) {
	patch := crud.NewPatch().
		Put(schema.Image.Path, input.Path).
		Put(schema.Image.Name, input.Name).
		Put(schema.Image.FocusX, input.FocusX).
		Put(schema.Image.FocusY, input.FocusY).
		Put(schema.Image.Hash, input.Hash).
		Put(schema.Image.DimensionX, input.DimensionX).
		Put(schema.Image.DimensionY, input.DimensionY).
		Put(schema.Image.Type, string(input.Type)).
		Put(schema.Image.Palette, input.Palette)

	return images.Insert(context, repository.pool, patch)
}

func (repository *PostgresRepository) Update(context context.Context, id int64, input UpdateInput) (*Image, error) {
	patch := crud.NewPatch()
	crud.Set(patch, schema.Image.Path, input.Path)
	crud.Set(patch, schema.Image.Name, input.Name)
	crud.SetOptional(patch, schema.Image.FocusX, input.FocusX)
	crud.SetOptional(patch, schema.Image.FocusY, input.FocusY)
	crud.SetOptional(patch, schema.Image.Hash, input.Hash)
	crud.Set(patch, schema.Image.DimensionX, input.DimensionX)
	crud.Set(patch, schema.Image.DimensionY, input.DimensionY)
	if input.Type != nil {
		patch.Put(schema.Image.Type, string(*input.Type))
	}
	crud.SetOptional(patch, schema.Image.Palette, input.Palette)

	if _, err := images.Update(context, repository.pool, id, patch); err != nil {
		return nil, err
	}
	return repository.FindByID(context, id)
}

// Delete removes the image and its tag and collection links. An image a
// session is showing cannot be deleted.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return images.Delete(context, repository.pool, id)
}

// attachTags fills Tags on every image with one query.
func (repository *PostgresRepository) attachTags(context context.Context, found []Image) error {
	if len(found) == 0 {
		return nil
	}

	ids := make([]int64, len(found))
	byID := make(map[int64]*Image, len(found))
	for index := range found {
		ids[index] = found[index].ID
		byID[found[index].ID] = &found[index]
	}

	query := fmt.Sprintf(`
		SELECT it.%[3]s, t.%[5]s, t.%[6]s
		FROM %[1]s AS it
		JOIN %[2]s AS t ON t.%[5]s = it.%[4]s
		WHERE it.%[3]s = ANY($1)
		ORDER BY t.%[5]s`,
		schema.ImageTag.Table, schema.Tag.Table,
		schema.ImageTag.ImageID, schema.ImageTag.TagID,
		schema.Tag.ID, schema.Tag.Label,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, ResourceImage)
	}
	defer rows.Close()

	for rows.Next() {
		var imageID int64
		var label tag.Tag
		if err := rows.Scan(&imageID, &label.ID, &label.Label); err != nil {
			return dberr.Wrap(err, ResourceImage)
		}
		if image, ok := byID[imageID]; ok {
			image.Tags = append(image.Tags, label)
		}
	}
	return dberr.Wrap(rows.Err(), ResourceImage)
}
