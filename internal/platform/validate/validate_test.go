// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/validate"
)

func TestValidator_CollectsEveryFailure(t *testing.T) {
	var v validate.Validator
	v.Required("title", "  ").
		MaxLen("message", "a very long message", 5).
		NonNegative("ac", -1).
		PositiveID("entity_id", 0).
		OneOf("type", "poster", "backdrop", "map")

	require.True(t, v.HasErrors())

	appErr := apperr.As(v.Err())
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"title", "message", "ac", "entity_id", "type"}, fields)
}

func TestValidator_PassesCleanInput(t *testing.T) {
	var v validate.Validator
	v.Required("title", "Ambush").
		MaxLen("title", "マインドフレイヤー", 9).
		OneOf("type", "map", "poster", "map").
		Custom("cr", false, "never reported")

	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Err())
}

func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("combatID", "Must be a positive integer")
	require.Len(t, err.Details, 1)
	assert.Equal(t, "combatID", err.Details[0].Field)
}
