// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"context"

	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=combatmock github.com/taibuivan/tabletop/internal/core/combat Repository
//go:generate mockgen -destination=mock/mock_entity_lookup.go -package=combatmock github.com/taibuivan/tabletop/internal/core/combat EntityLookup

// EntityLookup resolves the stat templates participants are built from.
// *entity.Service satisfies it.
type EntityLookup interface {
	GetEntity(context context.Context, id int64) (*entity.Entity, error)
}

// Repository defines the persistence contract for combats and their rosters.
//
// Every method returning a [Combat] returns it with its full roster.
type Repository interface {

	// # Combats

	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Combat, int, error)
	FindByID(context context.Context, id int64) (*Combat, error)

	// Create stores the combat and its initial roster in one transaction.
	Create(context context.Context, title string, roster []Participant) (*Combat, error)

	// Update applies a sparse update plus nested participant upserts in one
	// transaction. The active pointer is checked against the resulting roster.
	Update(context context.Context, id int64, input UpdateInput) (*Combat, error)

	// Delete removes the combat and, by cascade, its roster.
	Delete(context context.Context, id int64) error

	// # Roster

	// AddParticipants appends the roster in one transaction. A failing
	// element names its index in the error details.
	AddParticipants(context context.Context, combatID int64, roster []Participant) (*Combat, error)

	// RemoveParticipant is a keyed delete scoped to the combat. It is a no-op
	// when the participant is not in that roster.
	RemoveParticipant(context context.Context, combatID, participantID int64) (*Combat, error)

	// # Participants

	FindParticipant(context context.Context, id int64) (*Participant, error)
	UpdateParticipant(context context.Context, id int64, patch ParticipantPatch) (*Participant, error)
	DeleteParticipant(context context.Context, id int64) error
}
