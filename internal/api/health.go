// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

// Package api contains the operational handlers: the root liveness message
// and the store-connectivity diagnostic report.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mercatolabs/mercato/internal/platform/respond"
)

// DiagnosticDependencies holds the injectable probes for the /test endpoint.
type DiagnosticDependencies struct {
	// CheckDatabase pings the document store.
	CheckDatabase func(ctx context.Context) error

	// ListCollections returns the collection names in the active database.
	ListCollections func(ctx context.Context) ([]string, error)

	// DatabaseURLSet reports whether DATABASE_URL was present at startup.
	DatabaseURLSet bool

	// DatabaseNameSet reports whether DATABASE_NAME was present at startup.
	DatabaseNameSet bool
}

type operationalHandler struct {
	dependencies DiagnosticDependencies
	logger       *slog.Logger
}

// NewOperationalHandlers creates the / and /test http.HandlerFuncs.
func NewOperationalHandlers(deps DiagnosticDependencies, logger *slog.Logger) (root, diagnostic http.HandlerFunc) {
	handler := &operationalHandler{dependencies: deps, logger: logger}
	return handler.root, handler.diagnostic
}

// root handles GET / (storefront liveness message).
func (handler *operationalHandler) root(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"message": "E-commerce API is running"})
}

// diagnosticReport is the wire shape of the /test endpoint. The emoji
// status strings are part of the public contract; ops dashboards match on
// them verbatim.
type diagnosticReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// diagnosticErrorLimit caps how much of a probe failure reaches the report.
const diagnosticErrorLimit = 50

// maxReportedCollections caps the collection listing in the report.
const maxReportedCollections = 10

// diagnostic handles GET /test (store connectivity report).
//
// The report always answers 200; failures are encoded in the status strings
// so the endpoint stays usable even when the store is down.
func (handler *operationalHandler) diagnostic(writer http.ResponseWriter, request *http.Request) {
	report := diagnosticReport{
		Backend:          "✅ Running",
		Database:         "✅ Available",
		DatabaseURL:      presenceStatus(handler.dependencies.DatabaseURLSet),
		DatabaseName:     presenceStatus(handler.dependencies.DatabaseNameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if err := handler.probeStore(request.Context(), &report); err != nil {
		handler.logger.ErrorContext(request.Context(), "diagnostic_probe_failed", slog.Any("error", err))
	}

	respond.OK(writer, report)
}

// probeStore pings the store, then lists collections, updating the report
// in place. The returned error is for logging only; the report already
// carries the client-facing rendering.
func (handler *operationalHandler) probeStore(ctx context.Context, report *diagnosticReport) error {
	if err := handler.dependencies.CheckDatabase(ctx); err != nil {
		report.Database = "⚠️  Connected but Error: " + truncateDiagnostic(err.Error(), diagnosticErrorLimit)
		return err
	}

	names, err := handler.dependencies.ListCollections(ctx)
	if err != nil {
		report.Database = "⚠️  Connected but Error: " + truncateDiagnostic(err.Error(), diagnosticErrorLimit)
		return err
	}

	if len(names) > maxReportedCollections {
		names = names[:maxReportedCollections]
	}
	if names == nil {
		names = []string{}
	}

	report.Collections = names
	report.Database = "✅ Connected & Working"
	report.ConnectionStatus = "Connected"
	return nil
}

// presenceStatus renders env-presence booleans in the report's notation.
func presenceStatus(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncateDiagnostic shortens a probe error to at most limit characters,
// counting runes so multi-byte text is never split mid-character.
func truncateDiagnostic(message string, limit int) string {
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit])
}
