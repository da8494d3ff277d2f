// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		code   string
	}{
		{apperr.NotFound("Combat"), http.StatusNotFound, apperr.CodeNotFound},
		{apperr.Unauthorized("no token"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{apperr.Forbidden("viewer"), http.StatusForbidden, apperr.CodeForbidden},
		{apperr.Conflict("label taken"), http.StatusConflict, apperr.CodeConflict},
		{apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{apperr.RateLimited(2), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus, tt.code)
		assert.Equal(t, tt.code, tt.err.Code)
	}

	assert.Equal(t, "Combat not found", apperr.NotFound("Combat").Error())
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"combat\" does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}

func TestAs_FindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("remove participant: %w", apperr.Conflict("Participant is active", apperr.FieldError{Field: "active_participant_id"}))

	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.Equal(t, "active_participant_id", appError.Details[0].Field)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeNotFound))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(nil))
}

func TestWithCause_KeepsCauseInChain(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := apperr.Conflict("Tag already exists").WithCause(cause)

	assert.Equal(t, "Tag already exists", err.Error())
	assert.Equal(t, apperr.CodeConflict, err.Code)
	assert.ErrorIs(t, err, cause)
}
