// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/classify"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var collections = crud.Table[Collection]{
	Name:     schema.Collection.Table,
	Resource: ResourceCollection,
	Columns:  schema.Collection.Columns(),
	Scan:     scanCollection,
	Key:      func(collection *Collection) int64 { return collection.ID },
}

var imageCollections = classify.Link{
	Table:       schema.ImageCollection.Table,
	ImageColumn: schema.ImageCollection.ImageID,
	OwnerColumn: schema.ImageCollection.CollectionID,
	Owners:      schema.Collection.Table,
	Images:      schema.Image.Table,
	Resource:    ResourceCollection,
}

func scanCollection(row pgx.Row) (*Collection, error) {
	collection := &Collection{}
	if err := row.Scan(&collection.ID, &collection.Name); err != nil {
		return nil, err
	}
	return collection, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Collection, int, error) {
	query := repository.composer.
		Filter(listing.KindCollection, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]Collection, error) {
	return collections.GetMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Collection, error) {
	return collections.Get(context, repository.pool, id)
}

func (repository *PostgresRepository) Create(context context.Context, name string) (*Collection, error) {
	return collections.Insert(context, repository.pool, crud.NewPatch().Put(schema.Collection.Name, name))
}

func (repository *PostgresRepository) Rename(context context.Context, id int64, name string) (*Collection, error) {
	return collections.Update(context, repository.pool, id, crud.NewPatch().Put(schema.Collection.Name, name))
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return collections.Delete(context, repository.pool, id)
}

func (repository *PostgresRepository) Orphans(context context.Context) ([]Collection, error) {
	ids, err := imageCollections.Orphans(context, repository.pool)
	if err != nil {
		return nil, err
	}
	return collections.GetMany(context, repository.pool, ids)
}

// # Membership

func (repository *PostgresRepository) Apply(context context.Context, imageID, collectionID int64) error {
	return imageCollections.Apply(context, repository.pool, imageID, collectionID)
}

func (repository *PostgresRepository) Remove(context context.Context, imageID, collectionID int64) error {
	return imageCollections.Remove(context, repository.pool, imageID, collectionID)
}

func (repository *PostgresRepository) SetCollections(context context.Context, imageID int64, collectionIDs []int64) ([]Collection, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	kept, err := imageCollections.Set(context, transaction, imageID, collectionIDs)
	if err != nil {
		return nil, err
	}

	result, err := collections.GetMany(context, transaction, kept)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit collections: %w", err)
	}
	return result, nil
}

func (repository *PostgresRepository) CollectionsOf(context context.Context, imageID int64) ([]Collection, error) {
	ids, err := imageCollections.OwnersOf(context, repository.pool, imageID)
	if err != nil {
		return nil, err
	}
	return collections.GetMany(context, repository.pool, ids)
}
