// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the server settings from the environment with
caarlos0/env.

	cfg, err := config.Load()

Load rejects settings the server cannot run with: missing connection URLs,
an unknown hit point mode, or an unauthenticated deployment outside
development. The returned Config is never mutated afterwards.
*/
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/tabletop/internal/platform/dice"
)

const envDevelopment = "development"

// Config is the full runtime configuration of the campaign API.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"`

	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Live session fan-out
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Game master login; all three must be set for auth to be on.
	GMPasswordHash string        `env:"GM_PASSWORD_HASH"`
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	// HitPointMode resolves hit dice when a participant is built from an entity.
	HitPointMode dice.Mode `env:"HIT_POINT_MODE" envDefault:"avg"`

	// MatchLimit caps image rankings by tag overlap.
	MatchLimit int `env:"MATCH_LIMIT" envDefault:"12"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// ExtraOrigins lists browser origins allowed outside development.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// Load parses and checks the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) check() error {
	var problems []error

	if !c.HitPointMode.Valid() {
		problems = append(problems, fmt.Errorf("HIT_POINT_MODE %q is not one of min, max, avg, rnd, one", c.HitPointMode))
	}
	if c.MatchLimit < 1 {
		problems = append(problems, errors.New("MATCH_LIMIT must be positive"))
	}
	if !c.IsDevelopment() && !c.AuthEnabled() {
		problems = append(problems, fmt.Errorf("GM_PASSWORD_HASH and JWT key paths are required in %s", c.Environment))
	}

	return errors.Join(problems...)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == envDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether game master login is configured. Without it
// every mutating route is open, which Load allows only in development.
func (c *Config) AuthEnabled() bool {
	return c.GMPasswordHash != "" && c.JWTPrivKeyPath != "" && c.JWTPubKeyPath != ""
}

// AllowsOrigin reports whether origin is listed in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	return origin != "" && slices.ContainsFunc(c.ExtraOrigins, func(allowed string) bool {
		return allowed == origin
	})
}
