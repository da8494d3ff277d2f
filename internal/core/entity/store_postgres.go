// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// ResourceEntity names the row kind in client-facing errors.
const ResourceEntity = "Entity"

var entities = crud.Table[Entity]{
	Name:     schema.Entity.Table,
	Resource: ResourceEntity,
	Columns:  schema.Entity.Columns(),
	Scan:     scanEntity,
	Key:      func(entity *Entity) int64 { return entity.ID },
}

func scanEntity(row pgx.Row) (*Entity, error) {
	entity := &Entity{}
	err := row.Scan(
		&entity.ID, &entity.Name, &entity.HitDice, &entity.AC, &entity.CR,
		&entity.InitiativeModifier, &entity.IsPC, &entity.ImageID, &entity.Data,
		&entity.Source, &entity.SourcePage,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

// NewPostgresRepository wires the repository to a pool and the list composer.
func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

// # Reads

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Entity, int, error) {
	query := repository.composer.
		Filter(listing.KindEntity, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]Entity, error) {
	return entities.GetMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Entity, error) {
	return entities.Get(context, repository.pool, id)
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, entity *Entity) (*Entity, error) {
	return entities.Insert(context, repository.pool, insertPatch(entity))
}

/*
CreateMany inserts a whole catalog in one round trip.

Description: Every INSERT is queued on a single [pgx.Batch] inside one
transaction, so the import either lands completely or not at all.

Parameters:
  - context: context.Context
  - batch: []Entity (Validated records, identities ignored)

Returns:
  - int: Number of rows inserted
  - error: The first failing statement, wrapped by dberr
*/
func (repository *PostgresRepository) CreateMany(context context.Context, batch []Entity) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin import transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Queue one insert per record
	queue := &pgx.Batch{}
	for index := range batch {
		entities.QueueInsert(queue, insertPatch(&batch[index]))
	}

	// 2. Drain results in order; the first failure aborts the import
	results := transaction.SendBatch(context, queue)
	for range batch {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, dberr.Wrap(err, ResourceEntity)
		}
	}
	if err := results.Close(); err != nil {
		return 0, dberr.Wrap(err, ResourceEntity)
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit import: %w", err)
	}

	return len(batch), nil
}

func (repository *PostgresRepository) Update(context context.Context, id int64, input UpdateInput, cr optional.Value[float64]) (*Entity, error) {
	patch := crud.NewPatch()
	crud.Set(patch, schema.Entity.Name, input.Name)
	crud.Set(patch, schema.Entity.HitDice, input.HitDice)
	crud.Set(patch, schema.Entity.AC, input.AC)
	crud.SetOptional(patch, schema.Entity.CR, cr)
	crud.Set(patch, schema.Entity.InitiativeModifier, input.InitiativeModifier)
	crud.Set(patch, schema.Entity.IsPC, input.IsPC)
	crud.SetOptional(patch, schema.Entity.ImageID, input.ImageID)
	crud.SetOptional(patch, schema.Entity.Data, input.Data)
	crud.SetOptional(patch, schema.Entity.Source, input.Source)
	crud.SetOptional(patch, schema.Entity.SourcePage, input.SourcePage)

	return entities.Update(context, repository.pool, id, patch)
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return entities.Delete(context, repository.pool, id)
}

// insertPatch lists every writable column of entity.
func insertPatch(entity *Entity) *crud.Patch {
	return crud.NewPatch().
		Put(schema.Entity.Name, entity.Name).
		Put(schema.Entity.HitDice, entity.HitDice).
		Put(schema.Entity.AC, entity.AC).
		Put(schema.Entity.CR, entity.CR).
		Put(schema.Entity.InitiativeModifier, entity.InitiativeModifier).
		Put(schema.Entity.IsPC, entity.IsPC).
		Put(schema.Entity.ImageID, entity.ImageID).
		Put(schema.Entity.Data, entity.Data).
		Put(schema.Entity.Source, entity.Source).
		Put(schema.Entity.SourcePage, entity.SourcePage)
}
