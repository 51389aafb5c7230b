// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Authentication is resolved per route group rather than globally: public
storefront endpoints skip token parsing entirely, checkout accepts optional
identities, and the admin surface stacks the required resolver with a role
gate.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mercatolabs/mercato/internal/core/catalog"
	"github.com/mercatolabs/mercato/internal/core/order"
	"github.com/mercatolabs/mercato/internal/core/payment"
	"github.com/mercatolabs/mercato/internal/platform/config"
	"github.com/mercatolabs/mercato/internal/platform/constants"
	"github.com/mercatolabs/mercato/internal/platform/middleware"
	"github.com/mercatolabs/mercato/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Root is the GET / handler — the storefront liveness message.
	Root http.HandlerFunc

	// Schema is the GET /schema handler — static collection schemas.
	Schema http.HandlerFunc

	// Diagnostic is the GET /test handler — store connectivity report.
	Diagnostic http.HandlerFunc

	// Auth handles authentication routes (login, register).
	Auth *auth.Handler

	// Catalog handles product browsing and admin product creation.
	Catalog *catalog.Handler

	// Order handles checkout placement and purchase history.
	Order *order.Handler

	// Payment handles payment-intent creation.
	Payment *payment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Operational Endpoints
	// Unauthenticated root message, schema introspection, and diagnostics.
	r.Get("/", h.Root)
	r.Get("/schema", h.Schema)
	r.Get("/test", h.Diagnostic)

	// # Application API
	// Domain-specific route groups. Identity resolvers are attached where
	// each group needs them.
	requireAuth := middleware.RequireIdentity(verifier)
	optionalAuth := middleware.OptionalIdentity(verifier)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/products", h.Catalog.Routes())
		api.Mount("/admin/products", h.Catalog.AdminRoutes(requireAuth))
		api.Mount("/orders", h.Order.Routes(requireAuth, optionalAuth))
		api.Mount("/checkout", h.Payment.Routes())
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

// Handler exposes the configured router, primarily for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
