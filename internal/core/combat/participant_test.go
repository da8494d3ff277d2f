// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/combat"
	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/platform/dice"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func goblin() entity.Entity {
	return entity.Entity{
		ID:                 7,
		Name:               "Goblin",
		HitDice:            "2d6+2",
		AC:                 15,
		InitiativeModifier: 2,
		ImageID:            pointer.To(int64(3)),
	}
}

func TestConditions_Normalise(t *testing.T) {
	conditions := combat.NewConditions(" stunned", "prone", "", "prone", "blinded ")

	assert.Equal(t, combat.Conditions{"blinded", "prone", "stunned"}, conditions)
	assert.Equal(t, "blinded,prone,stunned", conditions.Encode())
	assert.True(t, conditions.Has("prone"))
	assert.False(t, conditions.Has("charmed"))
}

func TestConditions_Decode(t *testing.T) {
	assert.Empty(t, combat.DecodeConditions(""))
	assert.Equal(t, combat.Conditions{"prone"}, combat.DecodeConditions(",prone,,"))
	assert.Equal(t, combat.Conditions{"a", "b"}, combat.DecodeConditions("b,a,b"))
}

func TestConditions_JSON(t *testing.T) {
	var nothing combat.Conditions
	raw, err := json.Marshal(nothing)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	var decoded combat.Conditions
	require.NoError(t, json.Unmarshal([]byte(`["stunned","prone","stunned"]`), &decoded))
	assert.Equal(t, combat.Conditions{"prone", "stunned"}, decoded)
}

func TestFromEntity_CopiesStats(t *testing.T) {
	participant := combat.FromEntity(goblin(), combat.Overrides{}, dice.NewRoller(nil), dice.ModeAvg)

	assert.Equal(t, int64(7), *participant.EntityID)
	assert.Equal(t, "Goblin", participant.Name)
	assert.Equal(t, 15, participant.AC)
	assert.Equal(t, 2, participant.InitiativeModifier)
	assert.Equal(t, "2d6+2", participant.HitDice)
	assert.Equal(t, int64(3), *participant.ImageID)
	assert.Equal(t, 9, participant.MaxHP)
	assert.Equal(t, 9, participant.CurrentHP())

	// Defaults survive
	assert.True(t, participant.IsVisible)
	assert.True(t, participant.HasReaction)
	assert.Nil(t, participant.Initiative)
	assert.Empty(t, participant.Conditions)
}

func TestFromEntity_OverridesWin(t *testing.T) {
	participant := combat.FromEntity(goblin(), combat.Overrides{
		Name:       pointer.To("Goblin Archer"),
		MaxHP:      pointer.To(12),
		Initiative: pointer.To(17),
		IsVisible:  pointer.To(false),
		Conditions: &combat.Conditions{"prone"},
	}, dice.NewRoller(nil), dice.ModeAvg)

	assert.Equal(t, "Goblin Archer", participant.Name)
	assert.Equal(t, 12, participant.MaxHP)
	assert.Equal(t, 17, *participant.Initiative)
	assert.False(t, participant.IsVisible)
	assert.Equal(t, combat.Conditions{"prone"}, participant.Conditions)

	// Untouched fields still come from the entity
	assert.Equal(t, 15, participant.AC)
}

func TestFromEntity_HitPointModes(t *testing.T) {
	roller := dice.NewRoller(nil)

	assert.Equal(t, 4, combat.FromEntity(goblin(), combat.Overrides{}, roller, dice.ModeMin).MaxHP)
	assert.Equal(t, 14, combat.FromEntity(goblin(), combat.Overrides{}, roller, dice.ModeMax).MaxHP)
	assert.Equal(t, 9, combat.FromEntity(goblin(), combat.Overrides{}, roller, "").MaxHP)

	rolled := combat.FromEntity(goblin(), combat.Overrides{}, roller, dice.ModeRnd).MaxHP
	assert.GreaterOrEqual(t, rolled, 4)
	assert.LessOrEqual(t, rolled, 14)
}

func TestCurrentHP_GoesNegative(t *testing.T) {
	participant := combat.Participant{MaxHP: 9, Damage: 12}
	assert.Equal(t, -3, participant.CurrentHP())
}
