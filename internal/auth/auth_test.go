// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/auth"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/middleware"
	"github.com/taibuivan/tabletop/internal/platform/sec"
)

const password = "roll-for-initiative"

type fixture struct {
	service *auth.Service
	tokens  *sec.TokenService
	router  http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "tabletop.test")

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	service := auth.NewService(hash, tokens, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/auth", auth.NewHandler(service).Routes())
	router.With(middleware.RequireRole(sec.RoleGameMaster)).Post("/guarded", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	return fixture{service: service, tokens: tokens, router: router}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	t.Run("issues a game master token", func(t *testing.T) {
		token, err := f.service.Login(context.Background(), password)
		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.True(t, token.ExpiresAt.After(time.Now()))

		claims, err := f.tokens.VerifyToken(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, constants.GameMasterSubject, claims.Subject)
		assert.Equal(t, string(sec.RoleGameMaster), claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), "nat-1")
		var appErr *apperr.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	})

	t.Run("blank password", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), "   ")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}

func TestTokenUnlocksGuardedRoutes(t *testing.T) {
	f := newFixture(t)

	anonymous := httptest.NewRecorder()
	f.router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	login := httptest.NewRecorder()
	f.router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"password":"`+password+`"}`)))
	require.Equal(t, http.StatusOK, login.Code)

	var body struct {
		Data auth.Token `json:"data"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)

	guarded := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	guarded.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, guarded)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	me := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	me.Header.Set("Authorization", "Bearer "+body.Data.AccessToken)
	recorder = httptest.NewRecorder()
	f.router.ServeHTTP(recorder, me)
	assert.JSONEq(t, `{"data":{"subject":"gm","role":"gm"}}`, recorder.Body.String())
}

func TestViewerTokenIsForbidden(t *testing.T) {
	f := newFixture(t)

	token, err := f.tokens.GenerateAccessToken("screen", sec.RoleViewer, time.Hour)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestMe_Anonymous(t *testing.T) {
	f := newFixture(t)

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.JSONEq(t, `{"data":{"role":"viewer"}}`, recorder.Body.String())
}
