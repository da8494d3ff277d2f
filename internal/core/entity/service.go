// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/dice"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

const (
	maxNameLength    = 200
	maxHitDiceLength = 64
)

var hitDiceTooLarge = fmt.Sprintf("Dice past %dd%d+%d are not supported", dice.MaxCount, dice.MaxSides, dice.MaxConstant)

// checkHitDice rejects formulas that would roll 0 only because a number is
// past its cap. Free text that is not a formula stays allowed.
func checkHitDice(validator *validate.Validator, hitDice string) {
	validator.
		MaxLen(FieldHitDice, hitDice, maxHitDiceLength).
		Custom(FieldHitDice, dice.TooLarge(hitDice), hitDiceTooLarge)
}

// # Service Layer

// Service holds the bestiary business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Lookups

// ListEntities returns one page of entities and the total number of matches.
func (service *Service) ListEntities(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Entity, int, error) {
	return service.repo.List(context, filter, sort, page)
}

// GetEntity fetches one entity by id.
func (service *Service) GetEntity(context context.Context, id int64) (*Entity, error) {
	return service.repo.FindByID(context, id)
}

// # Management

/*
CreateEntity validates and stores a new stat template.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Entity: The stored entity
  - error: ValidationError for bad fields, Conflict for an unknown image
*/
func (service *Service) CreateEntity(context context.Context, input CreateInput) (*Entity, error) {
	entity, err := newEntity(input)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, entity)
	if err != nil {
		return nil, err
	}

	service.logger.Info("entity_created",
		slog.Int64("entity_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

/*
UpdateEntity applies a sparse update.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput (absent fields untouched)

Returns:
  - *Entity: The entity after the update
  - error: NotFound, ValidationError
*/
func (service *Service) UpdateEntity(context context.Context, id int64, input UpdateInput) (*Entity, error) {
	validator := &validate.Validator{}

	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLength)
	}
	if input.HitDice != nil {
		checkHitDice(validator, *input.HitDice)
	}
	if input.AC != nil {
		validator.NonNegative(FieldAC, *input.AC)
	}
	if page := input.SourcePage.Pointer(); page != nil {
		validator.NonNegative(FieldSourcePage, *page)
	}
	if image := input.ImageID.Pointer(); image != nil {
		validator.PositiveID(FieldImageID, *image)
	}

	// CR travels as notation; an explicit null or "" clears it
	cr := optional.Value[float64]{}
	if input.CR.Present() {
		parsed, err := ParseCR(input.CR.Get())
		validator.Custom(FieldCR, err != nil, "Must be 1/8, 1/4, 1/2 or a whole number")
		cr = optional.FromPointer(parsed)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, id, input, cr)
	if err != nil {
		return nil, err
	}

	service.logger.Info("entity_updated", slog.Int64("entity_id", id))
	return updated, nil
}

// DeleteEntity removes an entity. Participants keep their copied stats.
func (service *Service) DeleteEntity(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("entity_deleted", slog.Int64("entity_id", id))
	return nil
}

// newEntity validates input and applies column defaults.
func newEntity(input CreateInput) (*Entity, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	checkHitDice(validator, input.HitDice)

	ac := pointer.Fallback(input.AC, DefaultAC)
	validator.NonNegative(FieldAC, ac)

	if input.SourcePage != nil {
		validator.NonNegative(FieldSourcePage, *input.SourcePage)
	}
	if input.ImageID != nil {
		validator.PositiveID(FieldImageID, *input.ImageID)
	}

	cr, err := ParseCR(input.CR)
	validator.Custom(FieldCR, err != nil, "Must be 1/8, 1/4, 1/2 or a whole number")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Entity{
		Name:               input.Name,
		HitDice:            input.HitDice,
		AC:                 ac,
		CR:                 cr,
		InitiativeModifier: input.InitiativeModifier,
		IsPC:               input.IsPC,
		ImageID:            input.ImageID,
		Data:               input.Data,
		Source:             input.Source,
		SourcePage:         input.SourcePage,
	}, nil
}
