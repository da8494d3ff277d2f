// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/config"
	"github.com/taibuivan/tabletop/internal/platform/dice"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tabletop")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, dice.ModeAvg, cfg.HitPointMode)
	assert.Equal(t, 12, cfg.MatchLimit)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresAuth(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tabletop")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ENVIRONMENT", "production")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("GM_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownHitPointMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tabletop")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HIT_POINT_MODE", "d20")

	_, err := config.Load()
	assert.ErrorContains(t, err, "HIT_POINT_MODE")
}

func TestAuthEnabled(t *testing.T) {
	cfg := &config.Config{
		GMPasswordHash: "$2a$10$hash",
		JWTPrivKeyPath: "/keys/private.pem",
		JWTPubKeyPath:  "/keys/public.pem",
	}
	assert.True(t, cfg.AuthEnabled())

	cfg.JWTPubKeyPath = ""
	assert.False(t, cfg.AuthEnabled())
}

func TestAllowsOrigin(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tabletop")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EXTRA_ORIGINS", "https://table.example,https://screen.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.AllowsOrigin("https://table.example"))
	assert.True(t, cfg.AllowsOrigin("https://screen.example"))
	assert.False(t, cfg.AllowsOrigin("https://evil.example"))
	assert.False(t, (&config.Config{}).AllowsOrigin(""))
}
