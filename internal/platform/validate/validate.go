// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate accumulates field failures so one response can report every
problem in a request body at once.

	var validator validate.Validator
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 128)
	if err := validator.Err(); err != nil {
		return err
	}

Services validate before touching storage, so a rejected request leaves no
partial writes. A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

const failedMessage = "Validation failed"

// Validator records failures in the order rules are applied.
type Validator struct {
	failures []apperr.FieldError
}

func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts runes, so "Mind Flayer" and "マインドフレイヤー" are measured alike.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) NonNegative(field string, value int) *Validator {
	return v.Custom(field, value < 0, "Must not be negative")
}

// PositiveID checks a reference to another row.
func (v *Validator) PositiveID(field string, value int64) *Validator {
	return v.Custom(field, value <= 0, "Must be a positive identifier")
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns a VALIDATION_ERROR carrying every failure, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.failures...)
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}
