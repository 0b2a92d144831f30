// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	appDirName = "go-accounts"

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	OutlineBrief = "brief"
	OutlineLong  = "long"

	defaultPerPage           = 20
	defaultAutoCompleteLimit = 10
	defaultTokenDuration     = 24 * time.Hour
	defaultTokenIssuer       = "go-accounts"
	defaultVersion           = "dev"
	defaultHTTPAddress       = "localhost:8080"
	defaultAdapterAddress    = "http://localhost:8080"
	defaultAdapterTimeout    = 15 * time.Second
	defaultSessionGCInterval = 10 * time.Minute
)

// applyDefaults fills every field no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}

	if cfg.Listing.PerPage == 0 {
		cfg.Listing.PerPage = defaultPerPage
	}
	if cfg.Listing.Outline == "" {
		cfg.Listing.Outline = OutlineBrief
	}
	if cfg.Listing.AutoCompleteLimit == 0 {
		cfg.Listing.AutoCompleteLimit = defaultAutoCompleteLimit
	}

	cfg.Storage.DB.applyDefaults()

	if cfg.Storage.Sessions.TTL == 0 {
		cfg.Storage.Sessions.TTL = cfg.App.TokenDuration
	}
	if cfg.Storage.Sessions.Dir == "" && !cfg.Storage.Sessions.InMemory {
		cfg.Storage.Sessions.Dir = filepath.Join(xdg.DataHome, appDirName, "sessions")
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultAdapterAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}

	if cfg.Workers.SessionGCInterval == 0 {
		cfg.Workers.SessionGCInterval = defaultSessionGCInterval
	}
}

// applyDefaults picks the driver from the DSN and falls back to a SQLite
// database under the XDG data directory.
func (db *DB) applyDefaults() {
	if db.DSN == "" && (db.Driver == "" || db.Driver == DriverSQLite) {
		db.Driver = DriverSQLite
		db.DSN = filepath.Join(xdg.DataHome, appDirName, "accounts.db")
		return
	}

	if db.Driver != "" {
		return
	}

	if strings.HasPrefix(db.DSN, "postgres://") || strings.HasPrefix(db.DSN, "postgresql://") ||
		strings.Contains(db.DSN, "host=") {
		db.Driver = DriverPostgres
		return
	}
	db.Driver = DriverSQLite
}
