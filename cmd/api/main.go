// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// Command api is the entry point for the Mercato HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load .env (best effort) and configuration from environment variables.
//  3. Connect to MongoDB (fail fast on an unreachable store).
//  4. Construct the token service and payment gateway.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mercatolabs/mercato/internal/api"
	"github.com/mercatolabs/mercato/internal/core/catalog"
	"github.com/mercatolabs/mercato/internal/core/order"
	"github.com/mercatolabs/mercato/internal/core/payment"
	"github.com/mercatolabs/mercato/internal/platform/config"
	"github.com/mercatolabs/mercato/internal/platform/constants"
	"github.com/mercatolabs/mercato/internal/platform/mongodb"
	"github.com/mercatolabs/mercato/internal/platform/sec"
	"github.com/mercatolabs/mercato/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "mercato"))
	slog.SetDefault(log)

	log.Info("[Mercato] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// .env is a local-development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "mercato"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database", cfg.DatabaseName),
	)

	if cfg.UsingDefaultJWTSecret() {
		log.Warn("jwt_secret_default_in_use", slog.String("hint", "set JWT_SECRET before exposing this server"))
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. MongoDB ────────────────────────────────────────────────────────
	client, err := mongodb.Connect(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to mongodb")
	defer func() {
		log.Info("closing mongodb client")
		if cerr := client.Disconnect(context.Background()); cerr != nil {
			log.Error("mongodb close error", slog.Any("error", cerr))
		}
	}()

	database := client.Database(cfg.DatabaseName)

	// ── 4. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 5. Operational handlers (wired with real dependency probes) ───────
	root, diagnostic := api.NewOperationalHandlers(api.DiagnosticDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return mongodb.Ping(ctx, client)
		},
		ListCollections: func(ctx context.Context) ([]string, error) {
			return mongodb.ListCollections(ctx, database)
		},
		DatabaseURLSet:  os.Getenv("DATABASE_URL") != "",
		DatabaseNameSet: os.Getenv("DATABASE_NAME") != "",
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(database)
	authService := auth.NewService(userRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	productRepository := catalog.NewProductRepository(database)
	catalogService := catalog.NewService(productRepository, log)
	catalogHandler := catalog.NewHandler(catalogService)

	orderRepository := order.NewOrderRepository(database)
	orderService := order.NewService(orderRepository, log)
	orderHandler := order.NewHandler(orderService)

	var gateway payment.Gateway
	if cfg.StripeConfigured() {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey)
		log.Info("payment_gateway_stripe")
	} else {
		gateway = payment.NewMockGateway()
		log.Warn("payment_gateway_mock_mode", slog.String("hint", "set STRIPE_SECRET_KEY to enable real payments"))
	}
	paymentService := payment.NewService(gateway, log)
	paymentHandler := payment.NewHandler(paymentService)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Root:       root,
		Schema:     api.NewSchemaHandler(),
		Diagnostic: diagnostic,
		Auth:       authHandler,
		Catalog:    catalogHandler,
		Order:      orderHandler,
		Payment:    paymentHandler,
	}

	// Application-lifetime context: cancelled on shutdown so background
	// middleware workers (rate-limit sweeper) stop with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
