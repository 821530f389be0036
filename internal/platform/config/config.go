// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps the process environment into the one typed struct the
whole service is wired from. Parsing happens once in main; required
variables missing at startup fail the process there instead of surfacing
as nil stores later. The struct is treated as read-only after Load and
passed down through constructors, never through globals.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tamgioi API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — holds in-progress moderation sessions.
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for reviewer token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// RootAdminID is the platform user id that is always authorized as a
	// reviewer, even before any admin flag has been granted in the database.
	RootAdminID int64 `env:"ROOT_ADMIN_ID,required"`

	// BroadcastWebhookURL is where the transport layer receives per-recipient
	// broadcast deliveries. When empty, deliveries are logged only.
	BroadcastWebhookURL string `env:"BROADCAST_WEBHOOK_URL"`

	// ExtraOrigins is a comma-separated list of additional origins allowed
	// by CORS in production, beyond the tamgioi.app domain.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct. It fails when
// any variable marked required is missing.
func Load() (*Config, error) {

	cfg := &Config{}
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

// AllowedExtraOrigins returns the extra CORS origins as a cleaned slice.
func (c *Config) AllowedExtraOrigins() []string {
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
