// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across layers of the
// campaign API: server deadlines, throttling defaults, header names and the
// pub/sub channel scheme.
package constants

import "time"

const (
	AppName    = "tabletop-api"
	AppVersion = "0.1.0-dev"
)

// # Deadlines

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a request end to end, database statements
	// included.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the drain window for in-flight requests.
	ShutdownTimeout = 30 * time.Second

	// PublishTimeout bounds one session event publish.
	PublishTimeout = 2 * time.Second
)

// # Throttling

const (
	// Per-client token bucket used when RATE_LIMIT_RPS / RATE_LIMIT_BURST are unset.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Identity

const (
	AuthIssuer = "tabletop.local"

	// GameMasterSubject is the "sub" of every token; a campaign has one GM.
	GameMasterSubject = "gm"
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// Response members written outside the respond envelopes.
const (
	FieldData   = "data"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// SessionChannelPrefix prefixes the per-session broadcast channel ("sess42").
const SessionChannelPrefix = "sess"
