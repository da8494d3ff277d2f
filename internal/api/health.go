// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

// Check probes one dependency.
type Check func(context context.Context) error

// HealthDependencies holds the dependency checkers behind /ready. Nil checks
// are skipped.
type HealthDependencies struct {
	// Database pings the PostgreSQL pool.
	Database Check

	// Broker pings the Redis client carrying session events.
	Broker Check
}

type healthHandler struct {
	checks []namedCheck
	logger *slog.Logger
}

type namedCheck struct {
	name  string
	check Check
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{logger: logger}
	if deps.Database != nil {
		handler.checks = append(handler.checks, namedCheck{name: "postgres", check: deps.Database})
	}
	if deps.Broker != nil {
		handler.checks = append(handler.checks, namedCheck{name: "redis", check: deps.Broker})
	}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// readiness handles GET /ready: 200 when every dependency answers, 503 otherwise.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.checks))
	ready := true

	for _, dependency := range handler.checks {
		result := checkResult{Name: dependency.name, IsOK: true}
		if err := dependency.check(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, map[string]any{
		constants.FieldData: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		},
	})
}
