// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-accounts application. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Listing holds the system defaults of the account listing.
	Listing Listing `envPrefix:"LISTING_"`

	// Storage holds configuration for the relational database and the
	// session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings the command-line client uses to reach
	// the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds authentication and versioning settings.
type App struct {
	// TokenSignKey is the HMAC secret used to sign JWT access tokens.
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is embedded in the "iss" claim and checked on parse.
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens and of the sessions
	// bound to them.
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by the version endpoint.
	Version string `env:"VERSION"`
}

// Listing holds defaults used when a user has no stored preference.
type Listing struct {
	// PerPage is the default page size.
	PerPage int `env:"PER_PAGE"`

	// Outline is the default display outline, "brief" or "long".
	Outline string `env:"OUTLINE"`

	// AutoCompleteLimit caps the number of auto-complete matches.
	AutoCompleteLimit int `env:"AUTO_COMPLETE_LIMIT"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Sessions holds the badger session store settings.
	Sessions Sessions `envPrefix:"SESSIONS_"`
}

// DB holds the relational database connection settings.
type DB struct {
	// Driver is "pgx" for PostgreSQL or "sqlite3" for SQLite. When empty it
	// is derived from DSN.
	Driver string `env:"DRIVER"`

	// DSN is the data source name passed to the driver.
	DSN string `env:"DATABASE_URI"`
}

// Sessions holds the session store settings.
type Sessions struct {
	// Dir is the badger data directory. Ignored when InMemory is set.
	Dir string `env:"DIR"`

	// InMemory keeps sessions in memory only.
	InMemory bool `env:"IN_MEMORY"`

	// TTL is how long an idle session is kept.
	TTL time.Duration `env:"TTL"`
}

// Server holds HTTP server settings.
type Server struct {
	// HTTPAddress is the host:port the server listens on.
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client-side settings for talking to the server.
type Adapter struct {
	// HTTPAddress is the base URL of the server.
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every client request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// SessionGCInterval is how often the session store value log is
	// garbage-collected.
	SessionGCInterval time.Duration `env:"SESSION_GC_INTERVAL"`
}

// GetStructuredConfig builds the server configuration from all sources and
// validates it.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withFile().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

// GetClientConfig builds the command-line client configuration. Flags are
// left to the client itself.
func GetClientConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFile().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateClient()
}
