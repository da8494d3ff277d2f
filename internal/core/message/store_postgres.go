// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var messages = crud.Table[Message]{
	Name:     schema.Message.Table,
	Resource: ResourceMessage,
	Columns:  schema.Message.Columns(),
	Scan:     scanMessage,
	Key:      func(message *Message) int64 { return message.ID },
}

func scanMessage(row pgx.Row) (*Message, error) {
	message := &Message{}
	if err := row.Scan(&message.ID, &message.Message); err != nil {
		return nil, err
	}
	return message, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Message, int, error) {
	query := repository.composer.
		Filter(listing.KindMessage, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]Message, error) {
	return messages.GetMany(context, repository.pool, ids)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Message, error) {
	return messages.Get(context, repository.pool, id)
}

func (repository *PostgresRepository) Random(context context.Context) (*Message, error) {
	picked, err := messages.Select(context, repository.pool, `ORDER BY random() LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, apperr.NotFound(ResourceMessage)
	}
	return &picked[0], nil
}

func (repository *PostgresRepository) Create(context context.Context, text string) (*Message, error) {
	return messages.Insert(context, repository.pool, crud.NewPatch().Put(schema.Message.Message, text))
}

func (repository *PostgresRepository) Update(context context.Context, id int64, text string) (*Message, error) {
	return messages.Update(context, repository.pool, id, crud.NewPatch().Put(schema.Message.Message, text))
}

// Delete removes the message. Sessions showing it drop the overlay.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return messages.Delete(context, repository.pool, id)
}
