// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/dice"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

const maxNameLength = 200

// # Service Layer

// Service runs the combat engine.
type Service struct {
	repo     Repository
	entities EntityLookup
	roller   *dice.Roller
	mode     dice.Mode
	logger   *slog.Logger
}

/*
NewService constructs a new [Service].

Parameters:
  - repo: Repository
  - entities: EntityLookup (resolves from_entity_id)
  - roller: *dice.Roller
  - mode: dice.Mode (how hit points are rolled for entity-derived participants)
  - logger: *slog.Logger
*/
func NewService(repo Repository, entities EntityLookup, roller *dice.Roller, mode dice.Mode, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		entities: entities,
		roller:   roller,
		mode:     mode,
		logger:   logger,
	}
}

// # Combats

func (service *Service) ListCombats(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Combat, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetCombat(context context.Context, id int64) (*Combat, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateCombat starts a new encounter at round 0, inactive, with no active
participant.

Parameters:
  - context: context.Context
  - input: CreateInput (participants materialised in the order given)

Returns:
  - *Combat: The stored combat with its roster
  - error: ValidationError, or Conflict naming participants[i]
*/
func (service *Service) CreateCombat(context context.Context, input CreateInput) (*Combat, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	roster, err := service.materialise(context, input.Participants)
	if err != nil {
		return nil, err
	}

	combat, err := service.repo.Create(context, input.Title, roster)
	if err != nil {
		return nil, err
	}

	service.logger.Info("combat_created",
		slog.Int64("combat_id", combat.ID),
		slog.Int("participants", len(combat.Participants)),
	)
	return combat, nil
}

/*
UpdateCombat applies a sparse update.

Description: Absent fields are untouched. The round never moves backwards,
and the active pointer must name a participant of this combat once the
nested participant changes are applied. A nested element without an id
becomes a new participant and must carry a name.

Returns:
  - *Combat: The combat after the update
  - error: NotFound, ValidationError, Conflict
*/
func (service *Service) UpdateCombat(context context.Context, id int64, input UpdateInput) (*Combat, error) {
	validator := &validate.Validator{}

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, maxNameLength)
	}
	if input.Round != nil {
		validator.NonNegative(FieldRound, *input.Round)
	}
	if active := input.ActiveParticipantID.Pointer(); active != nil {
		validator.PositiveID(FieldActiveParticipantID, *active)
	}

	for index, patch := range input.Participants {
		validatePatch(validator, elementField(index, ""), patch)
		if patch.ID == nil && patch.Name == nil {
			validator.Custom(elementField(index, FieldName), true, "Required for a new participant")
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	combat, err := service.repo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("combat_updated",
		slog.Int64("combat_id", id),
		slog.Int("round", combat.Round),
	)
	return combat, nil
}

// DeleteCombat removes the combat together with its roster.
func (service *Service) DeleteCombat(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("combat_deleted", slog.Int64("combat_id", id))
	return nil
}

// # Roster

/*
AddParticipants appends participants to an existing roster.

Description: A missing combat is reported before the inputs are looked at.
Every input is then validated and every from_entity_id resolved before
anything is written; the inserts run in one transaction. Nothing is added
when any element fails.

Parameters:
  - context: context.Context
  - combatID: int64
  - inputs: []ParticipantInput

Returns:
  - *Combat: The combat with its full roster
  - error: NotFound (combat), ValidationError, Conflict naming participants[i]
*/
func (service *Service) AddParticipants(context context.Context, combatID int64, inputs []ParticipantInput) (*Combat, error) {
	// ── 1. Combat ─────────────────────────────────────────────────────────
	if _, err := service.repo.FindByID(context, combatID); err != nil {
		return nil, err
	}

	// ── 2. Roster ─────────────────────────────────────────────────────────
	roster, err := service.materialise(context, inputs)
	if err != nil {
		return nil, err
	}

	combat, err := service.repo.AddParticipants(context, combatID, roster)
	if err != nil {
		return nil, err
	}

	service.logger.Info("participants_added",
		slog.Int64("combat_id", combatID),
		slog.Int("added", len(roster)),
	)
	return combat, nil
}

// RemoveParticipant drops a participant from the roster. It is a no-op when
// the participant is not in this combat.
func (service *Service) RemoveParticipant(context context.Context, combatID, participantID int64) (*Combat, error) {
	combat, err := service.repo.RemoveParticipant(context, combatID, participantID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("participant_removed",
		slog.Int64("combat_id", combatID),
		slog.Int64("participant_id", participantID),
	)
	return combat, nil
}

// # Participants

func (service *Service) GetParticipant(context context.Context, id int64) (*Participant, error) {
	return service.repo.FindParticipant(context, id)
}

// UpdateParticipant applies a sparse update to one participant. The id in
// the patch body, if any, is ignored.
func (service *Service) UpdateParticipant(context context.Context, id int64, patch ParticipantPatch) (*Participant, error) {
	validator := &validate.Validator{}
	validatePatch(validator, "", patch)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	patch.ID = nil
	participant, err := service.repo.UpdateParticipant(context, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("participant_updated",
		slog.Int64("participant_id", id),
		slog.Int64("combat_id", participant.CombatID),
	)
	return participant, nil
}

// DeleteParticipant removes a participant, clearing any active pointer to it.
func (service *Service) DeleteParticipant(context context.Context, id int64) error {
	if err := service.repo.DeleteParticipant(context, id); err != nil {
		return err
	}

	service.logger.Info("participant_deleted", slog.Int64("participant_id", id))
	return nil
}

// # Materialisation

/*
materialise turns inputs into participants without touching the roster.

Description: Validation failures win over unknown entities: the caller sees
a ValidationError listing every bad field first, and only once the shape is
right a Conflict listing every from_entity_id that does not resolve.
*/
func (service *Service) materialise(context context.Context, inputs []ParticipantInput) ([]Participant, error) {
	validator := &validate.Validator{}
	var missing []apperr.FieldError

	roster := make([]Participant, 0, len(inputs))
	for index, input := range inputs {
		var participant Participant

		// 1. Entity-derived or inline
		if input.FromEntityID != nil {
			source, err := service.entities.GetEntity(context, *input.FromEntityID)
			switch {
			case apperr.HasCode(err, apperr.CodeNotFound):
				missing = append(missing, apperr.FieldError{
					Field:   elementField(index, FieldFromEntityID),
					Message: "Does not exist",
				})
				continue
			case err != nil:
				return nil, err
			}
			participant = FromEntity(*source, input.Overrides, service.roller, service.mode)
		} else {
			participant = newParticipant()
			input.Overrides.apply(&participant)
		}

		// 2. An explicit back-reference replaces the derived one
		if input.EntityID != nil {
			validator.PositiveID(elementField(index, FieldEntityID), *input.EntityID)
			participant.EntityID = input.EntityID
		}

		validateParticipant(validator, index, participant)
		roster = append(roster, participant)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperr.Conflict("Participant references a missing entity", missing...)
	}
	return roster, nil
}

// # Validation

func validateParticipant(validator *validate.Validator, index int, participant Participant) {
	validator.
		Required(elementField(index, FieldName), participant.Name).
		MaxLen(elementField(index, FieldName), participant.Name, maxNameLength).
		NonNegative(elementField(index, FieldAC), participant.AC).
		NonNegative(elementField(index, FieldMaxHP), participant.MaxHP)

	if participant.ImageID != nil {
		validator.PositiveID(elementField(index, FieldImageID), *participant.ImageID)
	}
	if name := participant.Conditions.invalidCondition(); name != "" {
		validator.Custom(elementField(index, FieldConditions), true, fmt.Sprintf("%q must not contain %q", name, conditionSeparator))
	}
}

// validatePatch checks the fields a patch sets. prefix is "" for a standalone
// participant and "participants[i]." inside a combat update.
func validatePatch(validator *validate.Validator, prefix string, patch ParticipantPatch) {
	if patch.ID != nil {
		validator.PositiveID(prefix+"id", *patch.ID)
	}
	if patch.Name != nil {
		validator.Required(prefix+FieldName, *patch.Name).MaxLen(prefix+FieldName, *patch.Name, maxNameLength)
	}
	if patch.AC != nil {
		validator.NonNegative(prefix+FieldAC, *patch.AC)
	}
	if patch.MaxHP != nil {
		validator.NonNegative(prefix+FieldMaxHP, *patch.MaxHP)
	}
	if entity := patch.EntityID.Pointer(); entity != nil {
		validator.PositiveID(prefix+FieldEntityID, *entity)
	}
	if image := patch.ImageID.Pointer(); image != nil {
		validator.PositiveID(prefix+FieldImageID, *image)
	}
	if patch.Conditions != nil {
		if name := patch.Conditions.invalidCondition(); name != "" {
			validator.Custom(prefix+FieldConditions, true, fmt.Sprintf("%q must not contain %q", name, conditionSeparator))
		}
	}
}

// elementField names a field of the index-th roster element; an empty name
// yields the "participants[i]." prefix.
func elementField(index int, name string) string {
	return fmt.Sprintf("%s[%d].%s", FieldParticipants, index, name)
}
