// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilderAppliesDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)

	assert.Equal(t, defaultPerPage, cfg.Listing.PerPage)
	assert.Equal(t, OutlineBrief, cfg.Listing.Outline)
	assert.Equal(t, defaultAutoCompleteLimit, cfg.Listing.AutoCompleteLimit)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.NotEmpty(t, cfg.Storage.DB.DSN)
	assert.Equal(t, defaultTokenDuration, cfg.Storage.Sessions.TTL)
	assert.NotEmpty(t, cfg.Storage.Sessions.Dir)
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultVersion, cfg.App.Version)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{Version: "2.0.0", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("LISTING_PER_PAGE", "42")

	b := newConfigBuilder().withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 42, b.configs[0].Listing.PerPage)
}

func TestWithEnv_InvalidValueIsReported(t *testing.T) {
	t.Setenv("LISTING_PER_PAGE", "many")

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	b := newConfigBuilder().withDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, b.err)
}

func TestWithDotEnv_LoadsVariables(t *testing.T) {
	path := writeTempConfig(t, ".env", []byte("APP_TOKEN_ISSUER=from-dotenv\n"))
	t.Setenv("APP_TOKEN_ISSUER", "")
	require.NoError(t, os.Unsetenv("APP_TOKEN_ISSUER"))

	b := newConfigBuilder().withDotEnv(path).withEnv()
	require.NoError(t, b.err)
	assert.Equal(t, "from-dotenv", b.configs[0].App.TokenIssuer)
}

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "localhost:9000", "-per-page", "5"})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:9000", b.configs[0].Server.HTTPAddress)
	assert.Equal(t, 5, b.configs[0].Listing.PerPage)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
}

func TestWithFile_NoOpWhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithFile_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"app":     map[string]any{"token_issuer": "json-issuer", "token_duration": "2h"},
		"listing": map[string]any{"per_page": 7, "outline": "long"},
	})
	require.NoError(t, err)
	path := writeTempConfig(t, "config.json", data)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, b.configs[1].App.TokenDuration)
	assert.Equal(t, 7, b.configs[1].Listing.PerPage)
	assert.Equal(t, "long", b.configs[1].Listing.Outline)
}

func TestWithFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", []byte(`
storage:
  db:
    driver: pgx
    dsn: postgres://u:p@localhost/accounts
  sessions:
    in_memory: true
    ttl: 30m
workers:
  session_gc_interval: 60000000000
`))

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	got := b.configs[1]
	assert.Equal(t, DriverPostgres, got.Storage.DB.Driver)
	assert.Equal(t, "postgres://u:p@localhost/accounts", got.Storage.DB.DSN)
	assert.True(t, got.Storage.Sessions.InMemory)
	assert.Equal(t, 30*time.Minute, got.Storage.Sessions.TTL)
	assert.Equal(t, time.Minute, got.Workers.SessionGCInterval)
}

func TestWithFile_InvalidFile(t *testing.T) {
	path := writeTempConfig(t, "config.json", []byte("{not json"))

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: path})
	b.withFile()

	assert.Error(t, b.err)
}

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := &StructuredConfig{App: App{TokenSignKey: "secret"}}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "no sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero per page", mutate: func(cfg *StructuredConfig) { cfg.Listing.PerPage = -1 }, wantErr: ErrInvalidListingConfigs},
		{name: "unknown outline", mutate: func(cfg *StructuredConfig) { cfg.Listing.Outline = "wide" }, wantErr: ErrInvalidListingConfigs},
		{name: "negative gc interval", mutate: func(cfg *StructuredConfig) { cfg.Workers.SessionGCInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDBApplyDefaults_DerivesDriverFromDSN(t *testing.T) {
	db := DB{DSN: "postgres://u:p@localhost/db"}
	db.applyDefaults()
	assert.Equal(t, DriverPostgres, db.Driver)

	db = DB{DSN: "file:test.db?cache=shared"}
	db.applyDefaults()
	assert.Equal(t, DriverSQLite, db.Driver)
}
