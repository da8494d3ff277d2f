// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"round": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"round":3}}`, recorder.Body.String())
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"goblin"}, pagination.NewMeta(1, 20, 1))

	assert.JSONEq(t, `{"data":["goblin"],"meta":{"page":1,"limit":20,"total":1,"total_pages":1}}`, recorder.Body.String())
}

func TestNoContent(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.NoContent(recorder)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation with details",
			err:    apperr.ValidationError("Validation failed", apperr.FieldError{Field: "participants[0].name", Message: "This field is required"}),
			status: http.StatusBadRequest,
			body:   `{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"participants[0].name","message":"This field is required"}]}`,
		},
		{
			name:   "wrapped not found",
			err:    fmt.Errorf("load combat: %w", apperr.NotFound("Combat")),
			status: http.StatusNotFound,
			body:   `{"error":"Combat not found","code":"NOT_FOUND"}`,
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("dial tcp 10.0.0.3:5432: connection refused"),
			status: http.StatusInternalServerError,
			body:   `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}

func TestError_BodyTooLarge(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))

	_, err := io.ReadAll(http.MaxBytesReader(recorder, request.Body, 8))
	respond.Error(recorder, request, err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
	assert.Contains(t, recorder.Body.String(), respond.PayloadTooLarge)
}
