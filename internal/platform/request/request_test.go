// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
)

type participantBody struct {
	Name       string `json:"name"`
	Initiative int    `json:"initiative"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	var target participantBody
	require.NoError(t, requestutil.DecodeJSON(post(`{"name":"Goblin","initiative":14}`+"\n"), &target))
	assert.Equal(t, participantBody{Name: "Goblin", Initiative: 14}, target)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var target participantBody
	err := requestutil.DecodeJSON(post(`{"name":`), &target)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDecodeJSON_NamesMistypedField(t *testing.T) {
	var target participantBody
	err := requestutil.DecodeJSON(post(`{"initiative":"high"}`), &target)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, "initiative", appError.Details[0].Field)
}

func TestDecodeJSON_TrailingDocument(t *testing.T) {
	var target participantBody
	err := requestutil.DecodeJSON(post(`{"name":"a"}{"name":"b"}`), &target)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("x", requestutil.MaxBodyBytes) + `"}`

	var target participantBody
	err := requestutil.DecodeJSON(post(body), &target)

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestID(t *testing.T) {
	withParam := func(value string) *http.Request {
		routeContext := chi.NewRouteContext()
		routeContext.URLParams.Add("combatID", value)
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
	}

	id, err := requestutil.ID(withParam("42"), "combatID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := requestutil.ID(withParam(raw), "combatID")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), raw)
	}
}
