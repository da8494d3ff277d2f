// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dice_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/internal/platform/dice"
)

// seededRoller is a deterministic toolkit roller.
type seededRoller struct {
	random *rand.Rand
}

func newSeededRoller(seed int64) *seededRoller {
	return &seededRoller{random: rand.New(rand.NewSource(seed))}
}

func (s *seededRoller) Roll(size int) (int, error) {
	return s.random.Intn(size) + 1, nil
}

func (s *seededRoller) RollN(count, size int) ([]int, error) {
	rolls := make([]int, count)
	for index := range rolls {
		rolls[index], _ = s.Roll(size)
	}
	return rolls, nil
}

type brokenRoller struct{}

func (brokenRoller) Roll(int) (int, error)         { return 0, errors.New("no dice") }
func (brokenRoller) RollN(int, int) ([]int, error) { return nil, errors.New("no dice") }

func TestRoll_DeterministicModes(t *testing.T) {
	tests := []struct {
		formula string
		mode    dice.Mode
		want    int
	}{
		{"2d6+3", dice.ModeMin, 5},
		{"2d6+3", dice.ModeMax, 15},
		{"2d6+3", dice.ModeAvg, 10},
		{"2d6+3", "", 10},
		{"2d6+3", dice.ModeOne, 1},
		{"2d6+2", dice.ModeAvg, 9},
		{"3d8+0", dice.ModeAvg, 13},
		{" 8d8 + 16 ", dice.ModeAvg, 52},
		{"1d4+1", dice.ModeAvg, 3},
	}

	for _, tt := range tests {
		t.Run(tt.formula+"/"+string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, dice.Roll(tt.formula, tt.mode))
		})
	}
}

func TestRoll_UnrecognisedFormulaIsZero(t *testing.T) {
	for _, formula := range []string{"not a formula", "", "2d6", "2d6+1d4+3", "d6+1", "2d6-1", "x2d6+3"} {
		for _, mode := range []dice.Mode{dice.ModeMin, dice.ModeMax, dice.ModeAvg, dice.ModeRnd, dice.ModeOne} {
			assert.Equal(t, 0, dice.Roll(formula, mode), "%q %s", formula, mode)
		}
	}
}

func TestRoll_UnknownModeIsZero(t *testing.T) {
	assert.Equal(t, 0, dice.Roll("2d6+3", dice.Mode("median")))
	assert.False(t, dice.Mode("median").Valid())
	assert.True(t, dice.Mode("").Valid())
}

func TestRoll_RandomIsSeedableAndBounded(t *testing.T) {
	first := dice.NewRoller(newSeededRoller(42))
	second := dice.NewRoller(newSeededRoller(42))

	for range 50 {
		a := first.Roll("4d6+2", dice.ModeRnd)
		b := second.Roll("4d6+2", dice.ModeRnd)

		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 6)
		assert.LessOrEqual(t, a, 26)
	}
}

func TestRoll_RandomWithFailingSource(t *testing.T) {
	assert.Equal(t, 0, dice.NewRoller(brokenRoller{}).Roll("2d6+3", dice.ModeRnd))
}

func TestRoll_ZeroDice(t *testing.T) {
	roller := dice.NewRoller(newSeededRoller(1))
	assert.Equal(t, 3, roller.Roll("0d6+3", dice.ModeRnd))
}

func TestRoll_FormulaPastLimitsIsZero(t *testing.T) {
	roller := dice.NewRoller(newSeededRoller(7))

	for _, formula := range []string{
		"100000000000000d6+1",
		"9223372036854775807d6+0",
		"101d6+0",
		"2d101+0",
		"2d6+10001",
		"99999999999999999999d6+1",
	} {
		for _, mode := range []dice.Mode{dice.ModeMin, dice.ModeMax, dice.ModeAvg, dice.ModeRnd} {
			assert.Equal(t, 0, roller.Roll(formula, mode), "%q %s", formula, mode)
		}
		assert.True(t, dice.TooLarge(formula), formula)
	}
}

func TestRoll_AtLimits(t *testing.T) {
	formula := fmt.Sprintf("%dd%d+%d", dice.MaxCount, dice.MaxSides, dice.MaxConstant)

	assert.Equal(t, dice.MaxCount*dice.MaxSides+dice.MaxConstant, dice.Roll(formula, dice.ModeMax))
	assert.False(t, dice.TooLarge(formula))

	total := dice.NewRoller(newSeededRoller(3)).Roll(formula, dice.ModeRnd)
	assert.GreaterOrEqual(t, total, dice.MaxCount+dice.MaxConstant)
	assert.LessOrEqual(t, total, dice.MaxCount*dice.MaxSides+dice.MaxConstant)
}

func TestTooLarge_IgnoresOtherShapes(t *testing.T) {
	for _, formula := range []string{"", "not a formula", "2d6+3", "2d6-1"} {
		assert.False(t, dice.TooLarge(formula), formula)
	}
}
