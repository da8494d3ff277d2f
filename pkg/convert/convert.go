// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert turns optional query-string values into typed values.

An empty string means "not supplied" and yields nil (or the default); any
other value must parse, so a typo is an error rather than a silent zero.
*/
package convert

import (
	"fmt"
	"strconv"
)

// ToIntD parses str, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// IntPointer parses str as an int. Empty yields nil.
func IntPointer(str string) (*int, error) {
	if str == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(str)
	if err != nil {
		return nil, fmt.Errorf("convert: %q is not an integer", str)
	}
	return &v, nil
}

// FloatPointer parses str as a float64. Empty yields nil.
func FloatPointer(str string) (*float64, error) {
	if str == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil, fmt.Errorf("convert: %q is not a number", str)
	}
	return &v, nil
}
