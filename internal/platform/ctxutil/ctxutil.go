// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries per-request values through [context.Context]: the
correlation id, the request-scoped logger and the caller's token claims.

Keys are values of an unexported generic type, so a lookup only matches what
this package stored, and each accessor is typed.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/sec"
)

type key[T any] struct{ name string }

var (
	requestIDKey = key[string]{"request_id"}
	loggerKey    = key[*slog.Logger]{"logger"}
	claimsKey    = key[*sec.AuthClaims]{"claims"}
)

func with[T any](ctx context.Context, k key[T], value T) context.Context {
	return context.WithValue(ctx, k, value)
}

func get[T any](ctx context.Context, k key[T]) (T, bool) {
	value, ok := ctx.Value(k).(T)
	return value, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return with(ctx, requestIDKey, id)
}

// RequestID returns the correlation id, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := get(ctx, requestIDKey)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return with(ctx, loggerKey, logger)
}

// Logger returns the request logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := get(ctx, loggerKey); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

func WithClaims(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return with(ctx, claimsKey, claims)
}

// Claims returns the verified token claims, or nil for anonymous viewers.
func Claims(ctx context.Context) *sec.AuthClaims {
	claims, _ := get(ctx, claimsKey)
	return claims
}

// IsGameMaster reports whether the caller holds a game master token.
func IsGameMaster(ctx context.Context) bool {
	claims := Claims(ctx)
	return claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleGameMaster)
}
