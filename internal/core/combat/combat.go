// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package combat runs encounters: a combat owns an ordered roster of
participants plus the round counter and the active-participant pointer.

# Ownership

  - Combat -> Participant is ownership. Deleting a combat deletes its roster.
  - Participant -> Entity is a weak back-reference. Stats are copied when the
    participant is built, and the reference is nulled if the entity goes away.

# Roster Order

Participants are listed in insertion order (ascending id). Turn order is a
read-time concern: clients sort by initiative themselves.

# Writes

Every multi-row write (create with a roster, batch add, nested update) runs in
one transaction that also locks the combat row, so concurrent roster edits on
the same combat serialise and a failure leaves no partial roster behind.
*/
package combat

import "github.com/taibuivan/tabletop/pkg/optional"

// # Field Identifiers

const (
	FieldTitle               = "title"
	FieldRound               = "round"
	FieldActiveParticipantID = "active_participant_id"
	FieldParticipants        = "participants"
	FieldName                = "name"
	FieldAC                  = "ac"
	FieldMaxHP               = "max_hp"
	FieldConditions          = "conditions"
	FieldEntityID            = "entity_id"
	FieldFromEntityID        = "from_entity_id"
	FieldImageID             = "image_id"
)

// Resources named in client-facing errors.
const (
	ResourceCombat      = "Combat"
	ResourceParticipant = "Participant"
)

// DefaultAC is the armour class of a participant that does not state one.
const DefaultAC = 10

// # Domain Model

// Combat is one encounter.
type Combat struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Round is advanced by the controlling client and never moves backwards.
	Round int `json:"round"`

	// ActiveParticipantID, when set, always names a participant of this combat.
	ActiveParticipantID *int64 `json:"active_participant_id"`

	IsActive     bool          `json:"is_active"`
	Participants []Participant `json:"participants"`
}

// Participant is a combat-specific copy of a creature's stats.
type Participant struct {
	ID                 int64      `json:"id"`
	CombatID           int64      `json:"combat_id"`
	EntityID           *int64     `json:"entity_id"`
	ImageID            *int64     `json:"image_id"`
	Name               string     `json:"name"`
	IsVisible          bool       `json:"is_visible"`
	IsPC               bool       `json:"is_PC"`
	Damage             int        `json:"damage"`
	MaxHP              int        `json:"max_hp"`
	HitDice            string     `json:"hit_dice"`
	AC                 int        `json:"ac"`
	Initiative         *int       `json:"initiative"`
	InitiativeModifier int        `json:"initiative_modifier"`
	Conditions         Conditions `json:"conditions"`
	HasReaction        bool       `json:"has_reaction"`
	Colour             *string    `json:"colour"`
}

// CurrentHP is derived, never stored. It goes negative once damage exceeds
// max HP.
func (p Participant) CurrentHP() int {
	return p.MaxHP - p.Damage
}

// # Inputs

// Overrides replaces individual participant fields. Nil fields keep the
// default or entity-derived value.
type Overrides struct {
	Name               *string     `json:"name"`
	ImageID            *int64      `json:"image_id"`
	IsVisible          *bool       `json:"is_visible"`
	IsPC               *bool       `json:"is_PC"`
	Damage             *int        `json:"damage"`
	MaxHP              *int        `json:"max_hp"`
	HitDice            *string     `json:"hit_dice"`
	AC                 *int        `json:"ac"`
	Initiative         *int        `json:"initiative"`
	InitiativeModifier *int        `json:"initiative_modifier"`
	Conditions         *Conditions `json:"conditions"`
	HasReaction        *bool       `json:"has_reaction"`
	Colour             *string     `json:"colour"`
}

// ParticipantInput describes one participant to add to a roster.
//
// With FromEntityID set the stats are copied from that entity (hit points
// rolled from its hit dice) and the inline fields override them. Without it
// the inline fields are the participant, and Name is required.
type ParticipantInput struct {
	FromEntityID *int64 `json:"from_entity_id"`
	EntityID     *int64 `json:"entity_id"`
	Overrides
}

// CreateInput is the payload for a new combat.
type CreateInput struct {
	Title        string             `json:"title"`
	Participants []ParticipantInput `json:"participants"`
}

// UpdateInput is a sparse combat update with nested participant upserts.
type UpdateInput struct {
	Title               *string               `json:"title"`
	Round               *int                  `json:"round"`
	ActiveParticipantID optional.Value[int64] `json:"active_participant_id"`
	IsActive            *bool                 `json:"is_active"`

	// Participants with an id are sparse-updated in place; without one they
	// are appended to the roster.
	Participants []ParticipantPatch `json:"participants"`
}

// ParticipantPatch is a sparse participant update.
type ParticipantPatch struct {
	ID                 *int64                 `json:"id"`
	Name               *string                `json:"name"`
	EntityID           optional.Value[int64]  `json:"entity_id"`
	ImageID            optional.Value[int64]  `json:"image_id"`
	IsVisible          *bool                  `json:"is_visible"`
	IsPC               *bool                  `json:"is_PC"`
	Damage             *int                   `json:"damage"`
	MaxHP              *int                   `json:"max_hp"`
	HitDice            *string                `json:"hit_dice"`
	AC                 *int                   `json:"ac"`
	Initiative         optional.Value[int]    `json:"initiative"`
	InitiativeModifier *int                   `json:"initiative_modifier"`
	Conditions         *Conditions            `json:"conditions"`
	HasReaction        *bool                  `json:"has_reaction"`
	Colour             optional.Value[string] `json:"colour"`
}
