// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/crud"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// # Table Descriptors

var combats = crud.Table[Combat]{
	Name:     schema.Combat.Table,
	Resource: ResourceCombat,
	Columns:  schema.Combat.Columns(),
	Scan:     scanCombat,
	Key:      func(combat *Combat) int64 { return combat.ID },
}

var participants = crud.Table[Participant]{
	Name:     schema.Participant.Table,
	Resource: ResourceParticipant,
	Columns:  schema.Participant.Columns(),
	Scan:     scanParticipant,
	Key:      func(participant *Participant) int64 { return participant.ID },
}

func scanCombat(row pgx.Row) (*Combat, error) {
	combat := &Combat{Participants: []Participant{}}
	err := row.Scan(&combat.ID, &combat.Title, &combat.Round, &combat.ActiveParticipantID, &combat.IsActive)
	if err != nil {
		return nil, err
	}
	return combat, nil
}

func scanParticipant(row pgx.Row) (*Participant, error) {
	participant := &Participant{}
	var conditions string

	err := row.Scan(
		&participant.ID, &participant.CombatID, &participant.EntityID, &participant.ImageID,
		&participant.Name, &participant.IsVisible, &participant.IsPC, &participant.Damage,
		&participant.MaxHP, &participant.HitDice, &participant.AC, &participant.Initiative,
		&participant.InitiativeModifier, &conditions, &participant.HasReaction, &participant.Colour,
	)
	if err != nil {
		return nil, err
	}

	participant.Conditions = DecodeConditions(conditions)
	return participant, nil
}

// # Repository

// PostgresRepository implements [Repository] over pgx.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	composer *listing.Composer
}

// NewPostgresRepository wires the repository to a pool and the list composer.
func NewPostgresRepository(pool *pgxpool.Pool, composer *listing.Composer) *PostgresRepository {
	return &PostgresRepository{pool: pool, composer: composer}
}

// # Combat Reads

func (repository *PostgresRepository) List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Combat, int, error) {
	query := repository.composer.
		Filter(listing.KindCombat, filter).
		Sort(sort).
		Page(page.Limit, page.Offset())

	return listing.Load(context, query, repository.hydrate)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Combat, error) {
	return load(context, repository.pool, id)
}

// hydrate loads combats by id, in order, each with its roster.
func (repository *PostgresRepository) hydrate(context context.Context, ids []int64) ([]Combat, error) {
	items, err := combats.GetMany(context, repository.pool, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	rosters, err := participants.Select(context, repository.pool,
		fmt.Sprintf(`WHERE %s = ANY($1) ORDER BY %s`, schema.Participant.CombatID, schema.Participant.ID),
		ids,
	)
	if err != nil {
		return nil, err
	}

	byCombat := make(map[int64][]Participant, len(items))
	for _, participant := range rosters {
		byCombat[participant.CombatID] = append(byCombat[participant.CombatID], participant)
	}
	for index := range items {
		if roster, found := byCombat[items[index].ID]; found {
			items[index].Participants = roster
		}
	}

	return items, nil
}

// # Combat Writes

/*
Create stores a combat with its initial roster.

Parameters:
  - context: context.Context
  - title: string
  - roster: []Participant (Stored in the given order)

Returns:
  - *Combat: The stored combat, round 0 and inactive
  - error: Conflict naming participants[i] when an element references a missing row
*/
func (repository *PostgresRepository) Create(context context.Context, title string, roster []Participant) (*Combat, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. The combat row; round, pointer and flag take their column defaults
	created, err := combats.Insert(context, transaction, crud.NewPatch().Put(schema.Combat.Title, title))
	if err != nil {
		return nil, err
	}

	// 2. The initial roster
	if err := insertRoster(context, transaction, created.ID, roster); err != nil {
		return nil, err
	}

	combat, err := load(context, transaction, created.ID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit combat: %w", err)
	}
	return combat, nil
}

/*
Update applies a sparse combat update with nested participant upserts.

Description: Runs in one transaction holding the combat row lock:

 1. Lock the combat and read its current round.
 2. Upsert participants: an element with an id is sparse-updated and must
    belong to this combat; one without is appended.
 3. Check the active pointer against the roster as it now stands.
 4. Write the combat's own columns.

Returns:
  - *Combat: The combat after the update, with its roster
  - error: NotFound, ValidationError (round moved back, pointer outside the roster), Conflict
*/
func (repository *PostgresRepository) Update(context context.Context, id int64, input UpdateInput) (*Combat, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// 1. Lock
	current, err := lock(context, transaction, id)
	if err != nil {
		return nil, err
	}

	if input.Round != nil && *input.Round < current.Round {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRound,
			Message: fmt.Sprintf("Cannot move back from round %d", current.Round),
		})
	}

	// 2. Nested upserts
	scope := crud.Scope{Column: schema.Participant.CombatID, Value: id}
	for index, patch := range input.Participants {
		if patch.ID != nil {
			_, err = participants.Update(context, transaction, *patch.ID, patch.columns(), scope)
		} else {
			_, err = participants.Insert(context, transaction, patch.columns().Put(schema.Participant.CombatID, id))
		}
		if err != nil {
			return nil, rosterError(index, err)
		}
	}

	// 3. Active pointer
	if active := input.ActiveParticipantID.Pointer(); active != nil {
		member, err := inRoster(context, transaction, id, *active)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldActiveParticipantID,
				Message: "Must be a participant of this combat",
			})
		}
	}

	// 4. Combat columns
	patch := crud.NewPatch()
	crud.Set(patch, schema.Combat.Title, input.Title)
	crud.Set(patch, schema.Combat.Round, input.Round)
	crud.SetOptional(patch, schema.Combat.ActiveParticipantID, input.ActiveParticipantID)
	crud.Set(patch, schema.Combat.IsActive, input.IsActive)

	if _, err := combats.Update(context, transaction, id, patch); err != nil {
		return nil, err
	}

	combat, err := load(context, transaction, id)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit combat update: %w", err)
	}
	return combat, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	return combats.Delete(context, repository.pool, id)
}

// # Roster

func (repository *PostgresRepository) AddParticipants(context context.Context, combatID int64, roster []Participant) (*Combat, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if _, err := lock(context, transaction, combatID); err != nil {
		return nil, err
	}

	if err := insertRoster(context, transaction, combatID, roster); err != nil {
		return nil, err
	}

	combat, err := load(context, transaction, combatID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit roster: %w", err)
	}
	return combat, nil
}

func (repository *PostgresRepository) RemoveParticipant(context context.Context, combatID, participantID int64) (*Combat, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if _, err := lock(context, transaction, combatID); err != nil {
		return nil, err
	}

	// Scoped delete: a participant of another combat is left alone
	scope := crud.Scope{Column: schema.Participant.CombatID, Value: combatID}
	removed, err := participants.DeleteAffected(context, transaction, participantID, scope)
	if err != nil {
		return nil, err
	}

	if removed > 0 {
		if err := clearActive(context, transaction, participantID); err != nil {
			return nil, err
		}
	}

	combat, err := load(context, transaction, combatID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit roster: %w", err)
	}
	return combat, nil
}

// # Participants

func (repository *PostgresRepository) FindParticipant(context context.Context, id int64) (*Participant, error) {
	return participants.Get(context, repository.pool, id)
}

func (repository *PostgresRepository) UpdateParticipant(context context.Context, id int64, patch ParticipantPatch) (*Participant, error) {
	return participants.Update(context, repository.pool, id, patch.columns())
}

func (repository *PostgresRepository) DeleteParticipant(context context.Context, id int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := participants.Delete(context, transaction, id); err != nil {
		return err
	}
	if err := clearActive(context, transaction, id); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit participant delete: %w", err)
	}
	return nil
}

// # Helpers

// load reads one combat with its roster in insertion order.
func load(context context.Context, querier crud.Querier, id int64) (*Combat, error) {
	combat, err := combats.Get(context, querier, id)
	if err != nil {
		return nil, err
	}

	roster, err := participants.Select(context, querier,
		fmt.Sprintf(`WHERE %s = $1 ORDER BY %s`, schema.Participant.CombatID, schema.Participant.ID),
		id,
	)
	if err != nil {
		return nil, err
	}

	combat.Participants = roster
	return combat, nil
}

// lock takes the combat row lock for the rest of the transaction.
func lock(context context.Context, transaction pgx.Tx, id int64) (*Combat, error) {
	locked, err := combats.Select(context, transaction,
		fmt.Sprintf(`WHERE %s = $1 FOR UPDATE`, schema.Combat.ID),
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		return nil, apperr.NotFound(ResourceCombat)
	}
	return &locked[0], nil
}

// insertRoster queues every participant on one batch and drains it in order.
func insertRoster(context context.Context, transaction pgx.Tx, combatID int64, roster []Participant) error {
	if len(roster) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for index := range roster {
		participants.QueueInsert(batch, insertPatch(combatID, &roster[index]))
	}

	results := transaction.SendBatch(context, batch)
	for index := range roster {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return rosterError(index, err)
		}
	}

	if err := results.Close(); err != nil {
		return dberr.Wrap(err, ResourceParticipant)
	}
	return nil
}

func inRoster(context context.Context, querier crud.Querier, combatID, participantID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Participant.Table, schema.Participant.ID, schema.Participant.CombatID)

	var member bool
	if err := querier.QueryRow(context, query, participantID, combatID).Scan(&member); err != nil {
		return false, dberr.Wrap(err, ResourceParticipant)
	}
	return member, nil
}

// clearActive unsets the active pointer of any combat that named participantID.
func clearActive(context context.Context, querier crud.Querier, participantID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.Combat.Table, schema.Combat.ActiveParticipantID, schema.Combat.ActiveParticipantID)

	if _, err := querier.Exec(context, query, participantID); err != nil {
		return dberr.Wrap(err, ResourceCombat)
	}
	return nil
}

// rosterError ties a failed roster write to the element that caused it.
func rosterError(index int, err error) error {
	if !dberr.IsForeignKeyViolation(err) {
		return dberr.Wrap(err, ResourceParticipant)
	}

	field := FieldEntityID
	if strings.Contains(dberr.Constraint(err), schema.Participant.ImageID) {
		field = FieldImageID
	}

	return apperr.Conflict("Participant references a missing record", apperr.FieldError{
		Field:   elementField(index, field),
		Message: "Does not exist",
	}).WithCause(err)
}

// insertPatch lists every column of a new participant.
func insertPatch(combatID int64, participant *Participant) *crud.Patch {
	return crud.NewPatch().
		Put(schema.Participant.CombatID, combatID).
		Put(schema.Participant.EntityID, participant.EntityID).
		Put(schema.Participant.ImageID, participant.ImageID).
		Put(schema.Participant.Name, participant.Name).
		Put(schema.Participant.IsVisible, participant.IsVisible).
		Put(schema.Participant.IsPC, participant.IsPC).
		Put(schema.Participant.Damage, participant.Damage).
		Put(schema.Participant.MaxHP, participant.MaxHP).
		Put(schema.Participant.HitDice, participant.HitDice).
		Put(schema.Participant.AC, participant.AC).
		Put(schema.Participant.Initiative, participant.Initiative).
		Put(schema.Participant.InitiativeModifier, participant.InitiativeModifier).
		Put(schema.Participant.Conditions, participant.Conditions.Encode()).
		Put(schema.Participant.HasReaction, participant.HasReaction).
		Put(schema.Participant.Colour, participant.Colour)
}

// columns lists the fields the patch sets.
func (patch ParticipantPatch) columns() *crud.Patch {
	columns := crud.NewPatch()
	crud.Set(columns, schema.Participant.Name, patch.Name)
	crud.SetOptional(columns, schema.Participant.EntityID, patch.EntityID)
	crud.SetOptional(columns, schema.Participant.ImageID, patch.ImageID)
	crud.Set(columns, schema.Participant.IsVisible, patch.IsVisible)
	crud.Set(columns, schema.Participant.IsPC, patch.IsPC)
	crud.Set(columns, schema.Participant.Damage, patch.Damage)
	crud.Set(columns, schema.Participant.MaxHP, patch.MaxHP)
	crud.Set(columns, schema.Participant.HitDice, patch.HitDice)
	crud.Set(columns, schema.Participant.AC, patch.AC)
	crud.SetOptional(columns, schema.Participant.Initiative, patch.Initiative)
	crud.Set(columns, schema.Participant.InitiativeModifier, patch.InitiativeModifier)
	if patch.Conditions != nil {
		columns.Put(schema.Participant.Conditions, patch.Conditions.Encode())
	}
	crud.Set(columns, schema.Participant.HasReaction, patch.HasReaction)
	crud.SetOptional(columns, schema.Participant.Colour, patch.Colour)
	return columns
}
