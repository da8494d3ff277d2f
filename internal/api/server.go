// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the campaign HTTP server: the middleware chain, the
probe endpoints and every domain router under /api/v1.

Reads are open to anyone at the table. Mutations pass through [Guard], which
requires a game master token once credentials are configured.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tabletop/internal/auth"
	"github.com/taibuivan/tabletop/internal/core/collection"
	"github.com/taibuivan/tabletop/internal/core/combat"
	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/core/image"
	"github.com/taibuivan/tabletop/internal/core/message"
	"github.com/taibuivan/tabletop/internal/core/rolltable"
	"github.com/taibuivan/tabletop/internal/core/session"
	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/config"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/metrics"
	"github.com/taibuivan/tabletop/internal/platform/middleware"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/internal/platform/sec"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when postgres and redis answer.
	Readiness http.HandlerFunc

	Auth       *auth.Handler
	Entity     *entity.Handler
	Combat     *combat.Handler
	Tag        *tag.Handler
	Collection *collection.Handler
	Image      *image.Handler
	Message    *message.Handler
	Session    *session.Handler
	RollTable  *rolltable.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. The collector may be nil.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, collector *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if collector != nil {
		r.Use(collector.Middleware)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(context, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if collector != nil {
		r.Handle("/metrics", collector.Handler())
	}

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, &apperr.AppError{
			Code:       "METHOD_NOT_ALLOWED",
			Message:    request.Method + " is not supported here",
			HTTPStatus: http.StatusMethodNotAllowed,
		})
	})

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/entities", h.Entity.Routes())
		api.Mount("/combats", h.Combat.Routes())
		api.Mount("/participants", h.Combat.ParticipantRoutes())
		api.Mount("/tags", h.Tag.Routes())
		api.Mount("/collections", h.Collection.Routes())
		api.Mount("/images", h.Image.Routes())
		api.Mount("/messages", h.Message.Routes())
		api.Mount("/sessions", h.Session.Routes())
		api.Mount("/rolltables", h.RollTable.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Guard returns the middleware protecting game master routes. Without
// configured credentials the routes stay open, which [config.Config]
// only allows in development.
func Guard(cfg *config.Config) func(http.Handler) http.Handler {
	if !cfg.AuthEnabled() {
		return middleware.Passthrough
	}
	return middleware.RequireRole(sec.RoleGameMaster)
}

// # Server Lifecycle

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
