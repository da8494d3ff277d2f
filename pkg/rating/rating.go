// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating converts challenge ratings between their table notation and
the float stored in the database.

	"1/8" <-> 0.125
	"1/4" <-> 0.25
	"1/2" <-> 0.5
	"3"   <-> 3

Any other fraction, a negative number or a non-integer decimal is rejected.
*/
package rating

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is returned for notation that is not a challenge rating.
var ErrInvalid = errors.New("rating: invalid challenge rating")

var fractions = map[string]float64{
	"1/8": 0.125,
	"1/4": 0.25,
	"1/2": 0.5,
}

// Parse decodes table notation into the stored float.
func Parse(notation string) (float64, error) {
	notation = strings.TrimSpace(notation)

	if value, ok := fractions[notation]; ok {
		return value, nil
	}

	whole, err := strconv.Atoi(notation)
	if err != nil || whole < 0 {
		return 0, ErrInvalid
	}
	return float64(whole), nil
}

// Format encodes a stored float back into table notation.
func Format(value float64) string {
	for notation, fraction := range fractions {
		if value == fraction {
			return notation
		}
	}
	if value == math.Trunc(value) {
		return strconv.Itoa(int(value))
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ParseList decodes a pipe-delimited list ("1/4|2|5").
// Empty elements are skipped; the first invalid element fails the list.
func ParseList(list string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(list, "|") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		value, err := Parse(part)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
