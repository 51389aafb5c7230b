// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

package middleware

import (
	"net/http"
	"strings"

	"github.com/mercatolabs/mercato/internal/platform/apperr"
	"github.com/mercatolabs/mercato/internal/platform/constants"
	"github.com/mercatolabs/mercato/internal/platform/ctxutil"
	"github.com/mercatolabs/mercato/internal/platform/respond"
	"github.com/mercatolabs/mercato/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.Identity, error)
}

// guestSentinel is the whole-header value that legacy storefront builds send
// for explicitly anonymous checkout. It must resolve to anonymous on
// optional routes, never to a verification attempt.
const guestSentinel = "bearer guest-token"

// RequireIdentity verifies the JWT from the Authorization header and fails
// closed: any absent, malformed, or unverifiable credential aborts the
// request with 401 before the handler runs.
//
// # Flow
//  1. Missing 'Authorization' header: abort 401.
//  2. Header not exactly '<scheme> <token>' with scheme 'bearer'
//     (case-insensitive): abort 401.
//  3. Token fails verification (tampered or expired alike): abort 401.
//  4. Otherwise inject [*sec.Identity] into the request context.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//
// # Returns
//   - An [http.Handler] middleware.
func RequireIdentity(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Presence Check ─────────────────────────────────────────────
			if authHeader == "" {
				respond.Error(writer, request, apperr.Unauthorized("Missing Authorization header"))
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			// Fields splits on any whitespace run, so stray padding between
			// scheme and token is tolerated the same way clients expect.
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid Authorization header"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			// Expired and tampered tokens are indistinguishable to the client.
			identity, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// OptionalIdentity resolves the caller identity when possible and fails
// open: the request always proceeds, at worst anonymously. No failure of
// this middleware is ever surfaced to the client.
//
// # Flow
//  1. Missing header: proceed anonymous.
//  2. Whole header equals the guest sentinel (trimmed, case-insensitive):
//     proceed anonymous without attempting verification.
//  3. Malformed header or failed verification: proceed anonymous.
//  4. Only a fully valid token injects [*sec.Identity] into the context.
//
// # Usage
//
// Mounted on routes that serve both signed-in users and guests, such as
// order placement.
func OptionalIdentity(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Guest Sentinel ─────────────────────────────────────────────
			if strings.EqualFold(strings.TrimSpace(authHeader), guestSentinel) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Best-Effort Verification ───────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := verifier.VerifyToken(parts[1])
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests whose caller doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [RequireIdentity].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check if the caller's role meets or exceeds the target role using [sec.UserRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden(roleDeniedMessage(role)))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// roleDeniedMessage renders the denial text for a role gate, e.g. "Admin only".
// Role names are ASCII, so uppercasing the first byte is sufficient.
func roleDeniedMessage(role sec.UserRole) string {
	name := string(role)
	if name == "" {
		return "Access denied"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " only"
}
