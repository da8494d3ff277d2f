// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"no rows", pgx.ErrNoRows, apperr.CodeNotFound, http.StatusNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeConflict, http.StatusConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperr.CodeValidation, http.StatusBadRequest},
		{"other pg error", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, apperr.CodeInternal, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Combat")
			appErr := apperr.As(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestWrap_NilAndPassthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Tag"))

	original := apperr.Conflict("Tag already applied")
	assert.Same(t, original, dberr.Wrap(original, "Tag"))
}

func TestWrap_NotFoundNamesResource(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "Participant")
	assert.Equal(t, "Participant not found", err.Error())
}

func TestViolationHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	foreign := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.False(t, dberr.IsUniqueViolation(foreign))
	assert.True(t, dberr.IsForeignKeyViolation(foreign))
	assert.False(t, dberr.IsForeignKeyViolation(errors.New("x")))
}

func TestConstraint(t *testing.T) {
	violation := fmt.Errorf("batch: %w", &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		ConstraintName: "participants_entity_id_fkey",
	})

	assert.Equal(t, "participants_entity_id_fkey", dberr.Constraint(violation))
	assert.Empty(t, dberr.Constraint(errors.New("boom")))
}

func TestWrap_ViolationStaysInspectable(t *testing.T) {
	wrapped := dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "Tag")

	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.True(t, dberr.IsUniqueViolation(wrapped))
	assert.False(t, dberr.IsUniqueViolation(dberr.Wrap(pgx.ErrNoRows, "Tag")))
}
