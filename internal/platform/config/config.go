// Copyright (c) 2026 Mercato Labs. All rights reserved.
// Author: minh.tranduc@mercatolabs.io

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is the out-of-the-box signing secret. It exists so the
// server boots with zero configuration in development; running with it in
// production makes every token forgeable, so startup logs a warning when it
// is still in use.
const DefaultJWTSecret = "dev-secret-change-me"

// # Configuration Schema

// Config holds all runtime configuration for the Mercato API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document store (MongoDB)
	DatabaseURL  string `env:"DATABASE_URL,required"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"ecommerce"`

	// Symmetric signing secret for access tokens
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// Payment provider credential. When empty, checkout runs in mock mode
	// and returns a fixed client secret instead of calling out.
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ExtraAllowedOrigins returns the additional CORS origins configured via
// EXTRA_ORIGINS as a cleaned slice.
func (c *Config) ExtraAllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// StripeConfigured reports whether a payment provider credential is present.
func (c *Config) StripeConfigured() bool {
	return c.StripeSecretKey != ""
}

// UsingDefaultJWTSecret reports whether the signing secret was left at its
// development default.
func (c *Config) UsingDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
