// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dice evaluates hit-dice formulas of the form "NdD+C".

Only that exact shape is understood ("2d6+3", " 8d8 + 16 "). Anything else,
including multi-term expressions such as "2d6+1d4+3", evaluates to 0.

	min  N + C
	max  N*D + C
	avg  floor(N*(D+1)/2) + C   (the default)
	rnd  N random rolls in [1, D] plus C
	one  always 1

N, D and C are capped at [MaxCount], [MaxSides] and [MaxConstant]; a formula
past any cap evaluates to 0 like any other unrecognised one.
*/
package dice

import (
	"regexp"
	"strconv"

	toolkit "github.com/KirkDiggler/rpg-toolkit/dice"
)

// Mode selects how a formula turns into a number.
type Mode string

const (
	ModeMin Mode = "min"
	ModeMax Mode = "max"
	ModeAvg Mode = "avg"
	ModeRnd Mode = "rnd"
	ModeOne Mode = "one"
)

// Valid reports whether m is a known mode. The empty mode counts as avg.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeMin, ModeMax, ModeAvg, ModeRnd, ModeOne:
		return true
	}
	return false
}

// Formula limits. The largest published stat blocks stay well inside them.
const (
	MaxCount    = 100
	MaxSides    = 100
	MaxConstant = 10000
)

var limits = [3]int{MaxCount, MaxSides, MaxConstant}

var formula = regexp.MustCompile(`^\s*(\d+)d(\d+)\s*\+\s*(\d+)\s*$`)

// Roller evaluates formulas. Random rolls come from the injected toolkit
// roller, so tests can seed it.
type Roller struct {
	source toolkit.Roller
}

// NewRoller creates a Roller. A nil source uses the toolkit's default roller.
func NewRoller(source toolkit.Roller) *Roller {
	if source == nil {
		source = toolkit.DefaultRoller
	}
	return &Roller{source: source}
}

// Roll evaluates hitDice in the given mode.
//
// A formula that does not match, an unknown mode, or a failing random
// source all yield 0.
func (r *Roller) Roll(hitDice string, mode Mode) int {
	count, sides, constant, ok := parse(hitDice)
	if !ok {
		return 0
	}

	switch mode {
	case ModeMin:
		return count + constant
	case ModeMax:
		return count*sides + constant
	case ModeAvg, "":
		return count*(sides+1)/2 + constant
	case ModeRnd:
		total, ok := r.random(count, sides)
		if !ok {
			return 0
		}
		return total + constant
	case ModeOne:
		return 1
	default:
		return 0
	}
}

// random sums count rolls of a sides-sided die. ok is false when the source fails.
func (r *Roller) random(count, sides int) (total int, ok bool) {
	if count == 0 || sides == 0 {
		return 0, true
	}

	rolls, err := r.source.RollN(count, sides)
	if err != nil {
		return 0, false
	}

	for _, roll := range rolls {
		total += roll
	}
	return total, true
}

// Roll evaluates hitDice with the default random source.
func Roll(hitDice string, mode Mode) int {
	return defaultRoller.Roll(hitDice, mode)
}

var defaultRoller = NewRoller(nil)

// TooLarge reports whether hitDice has the NdD+C shape but a number past
// its cap. Such a formula rolls 0.
func TooLarge(hitDice string) bool {
	if !formula.MatchString(hitDice) {
		return false
	}
	_, _, _, ok := parse(hitDice)
	return !ok
}

// parse splits a formula into its three numbers. ok is false for any other
// shape and for numbers past their cap.
func parse(hitDice string) (count, sides, constant int, ok bool) {
	matches := formula.FindStringSubmatch(hitDice)
	if matches == nil {
		return 0, 0, 0, false
	}

	var values [3]int
	for index, limit := range limits {
		value, err := strconv.Atoi(matches[index+1])
		if err != nil || value > limit {
			return 0, 0, 0, false
		}
		values[index] = value
	}

	return values[0], values[1], values[2], true
}
