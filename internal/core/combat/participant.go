// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/platform/dice"
)

// # Conditions

// conditionSeparator joins condition names in the stored column.
const conditionSeparator = ","

// Conditions is a set of condition names ("prone", "stunned"), kept sorted.
//
// It is a JSON array on the wire and a comma-joined string in storage.
type Conditions []string

// NewConditions builds a set: names are trimmed, empties dropped, duplicates
// collapsed and the result sorted.
func NewConditions(names ...string) Conditions {
	set := make(Conditions, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			set = append(set, name)
		}
	}

	slices.Sort(set)
	return slices.Compact(set)
}

// DecodeConditions reads the stored encoding.
func DecodeConditions(stored string) Conditions {
	return NewConditions(strings.Split(stored, conditionSeparator)...)
}

// Encode renders the stored encoding.
func (c Conditions) Encode() string {
	return strings.Join(NewConditions(c...), conditionSeparator)
}

// Has reports whether name is in the set.
func (c Conditions) Has(name string) bool {
	_, found := slices.BinarySearch(c, name)
	return found
}

// MarshalJSON renders an empty set as [] rather than null.
func (c Conditions) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(c))
}

// UnmarshalJSON normalises whatever list the client sent.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*c = NewConditions(names...)
	return nil
}

// invalidCondition returns the first name that cannot survive the stored
// encoding, or "".
func (c Conditions) invalidCondition() string {
	for _, name := range c {
		if strings.Contains(name, conditionSeparator) {
			return name
		}
	}
	return ""
}

// # Construction

// newParticipant returns a participant carrying the column defaults.
func newParticipant() Participant {
	return Participant{
		IsVisible:   true,
		HasReaction: true,
		AC:          DefaultAC,
		Conditions:  Conditions{},
	}
}

/*
FromEntity builds a participant from a stat template. It touches no storage.

Description: Name, AC, initiative modifier, hit dice, portrait and the PC flag
are copied from source; max HP is rolled from the hit dice with mode (the
empty mode rolls the average). Every non-nil override then replaces the
derived value, field by field.

Parameters:
  - source: entity.Entity
  - overrides: Overrides
  - roller: *dice.Roller (rolls "rnd" hit points)
  - mode: dice.Mode

Returns:
  - Participant: Not yet attached to a combat
*/
func FromEntity(source entity.Entity, overrides Overrides, roller *dice.Roller, mode dice.Mode) Participant {
	participant := newParticipant()

	participant.EntityID = &source.ID
	participant.Name = source.Name
	participant.AC = source.AC
	participant.InitiativeModifier = source.InitiativeModifier
	participant.HitDice = source.HitDice
	participant.ImageID = source.ImageID
	participant.IsPC = source.IsPC
	participant.MaxHP = roller.Roll(source.HitDice, mode)

	overrides.apply(&participant)
	return participant
}

// apply copies every set override onto participant.
func (overrides Overrides) apply(participant *Participant) {
	if overrides.Name != nil {
		participant.Name = *overrides.Name
	}
	if overrides.ImageID != nil {
		participant.ImageID = overrides.ImageID
	}
	if overrides.IsVisible != nil {
		participant.IsVisible = *overrides.IsVisible
	}
	if overrides.IsPC != nil {
		participant.IsPC = *overrides.IsPC
	}
	if overrides.Damage != nil {
		participant.Damage = *overrides.Damage
	}
	if overrides.MaxHP != nil {
		participant.MaxHP = *overrides.MaxHP
	}
	if overrides.HitDice != nil {
		participant.HitDice = *overrides.HitDice
	}
	if overrides.AC != nil {
		participant.AC = *overrides.AC
	}
	if overrides.Initiative != nil {
		participant.Initiative = overrides.Initiative
	}
	if overrides.InitiativeModifier != nil {
		participant.InitiativeModifier = *overrides.InitiativeModifier
	}
	if overrides.Conditions != nil {
		participant.Conditions = NewConditions(*overrides.Conditions...)
	}
	if overrides.HasReaction != nil {
		participant.HasReaction = *overrides.HasReaction
	}
	if overrides.Colour != nil {
		participant.Colour = overrides.Colour
	}
}
