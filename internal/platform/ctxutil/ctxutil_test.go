// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/internal/platform/ctxutil"
	"github.com/taibuivan/tabletop/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.RequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192b8a4-round-3")
	assert.Equal(t, "0192b8a4-round-3", ctxutil.RequestID(ctx))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.Logger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.Logger(ctxutil.WithLogger(ctx, logger)))

	// a nil logger never escapes
	assert.Same(t, slog.Default(), ctxutil.Logger(ctxutil.WithLogger(ctx, nil)))
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.Claims(ctx))
	assert.False(t, ctxutil.IsGameMaster(ctx))

	gm := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "gm"},
		Role:             string(sec.RoleGameMaster),
	}
	ctx = ctxutil.WithClaims(ctx, gm)
	assert.Same(t, gm, ctxutil.Claims(ctx))
	assert.True(t, ctxutil.IsGameMaster(ctx))

	viewer := ctxutil.WithClaims(context.Background(), &sec.AuthClaims{Role: string(sec.RoleViewer)})
	assert.False(t, ctxutil.IsGameMaster(viewer))
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := context.WithValue(context.Background(), "request_id", "foreign") //nolint:staticcheck
	assert.Empty(t, ctxutil.RequestID(ctx))
}
