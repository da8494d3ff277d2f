// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

var sessions = crud.Table[Session]{
	Name:     schema.Session.Table,
	Resource: ResourceSession,
	Columns:  schema.Session.Columns(),
	Scan:     scanSession,
	Key:      func(session *Session) int64 { return session.ID },
}

// scanSession rebuilds the mode from its columns. The table's CHECK
// constraint guarantees they agree.
func scanSession(row pgx.Row) (*Session, error) {
	session := &Session{}
	var mode string
	var imageID, combatID *int64

	if err := row.Scan(&session.ID, &session.Title, &mode, &imageID, &combatID, &session.MessageID); err != nil {
		return nil, err
	}

	decoded, err := NewMode(ModeName(mode), imageID, combatID)
	if err != nil {
		return nil, fmt.Errorf("session %d: stored mode %q: %w", session.ID, mode, err)
	}
	session.Mode = decoded
	return session, nil
}

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, page pagination.Params) ([]Session, int, error) {
	var total int
	count := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Session.Table)
	if err := repository.pool.QueryRow(context, count).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, ResourceSession)
	}

	items, err := sessions.Select(context, repository.pool,
		fmt.Sprintf(`ORDER BY %s LIMIT $1 OFFSET $2`, schema.Session.ID), page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Session, error) {
	return sessions.Get(context, repository.pool, id)
}

func (repository *PostgresRepository) Create(context context.Context, session Session) (*Session, error) {
	patch := modePatch(crud.NewPatch(), session.Mode).
		Put(schema.Session.Title, session.Title).
		Put(schema.Session.MessageID, session.MessageID)

	return sessions.Insert(context, repository.pool, patch)
}

func (repository *PostgresRepository) Update(context context.Context, id int64, change Change) (*Session, error) {
	patch := crud.NewPatch()
	crud.Set(patch, schema.Session.Title, change.Title)
	crud.SetOptional(patch, schema.Session.MessageID, change.MessageID)
	if change.Mode != nil {
		modePatch(patch, change.Mode)
	}

	return sessions.Update(context, repository.pool, id, patch)
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return sessions.Delete(context, repository.pool, id)
}

// modePatch writes all three mode columns, so switching modes clears the
// reference the old mode used.
func modePatch(patch *crud.Patch, mode Mode) *crud.Patch {
	refs := mode.references()
	return patch.
		Put(schema.Session.Mode, string(mode.Name())).
		Put(schema.Session.ImageID, refs.ImageID).
		Put(schema.Session.CombatID, refs.CombatID)
}
