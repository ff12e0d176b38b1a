// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newClientFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("client", pflag.ContinueOnError)
	RegisterClientFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func newServerFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	RegisterServerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "first"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "contracts.db", cfg.Storage.DSN)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestGetClientConfig_Priority(t *testing.T) {
	jsonPath := writeTempFile(t, "config.json", `{
		"adapter": {"base_url": "http://json:1", "request_timeout": "7s"},
		"storage": {"db": {"dsn": "json.db"}},
		"workers": {"sync_interval": "1m"},
		"log": {"file_path": "json.log"}
	}`)
	envFile := writeTempFile(t, "test.env", "ADAPTER_BASE_URL=http://dotenv:2\nSTORAGE_DB_DATABASE_URI=dotenv.db\n")

	t.Setenv("CONFIG", jsonPath)
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("STORAGE_DB_DATABASE_URI", "env.db")

	fs := newClientFlagSet(t, "--sync-interval", "30s")

	cfg, err := GetClientConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "http://dotenv:2", cfg.Adapter.BaseURL, ".env overrides json")
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout, "json overrides defaults")
	assert.Equal(t, "env.db", cfg.Storage.DSN, "env overrides .env")
	assert.Equal(t, 30*time.Second, cfg.Workers.SyncInterval, "flags override everything")
	assert.Equal(t, "json.log", cfg.LogFile)
}

func TestGetClientConfig_FlagConfigPath(t *testing.T) {
	jsonPath := writeTempFile(t, "config.json", `{"storage": {"db": {"dsn": "flag-json.db"}}}`)

	cfg, err := GetClientConfig(newClientFlagSet(t, "-c", jsonPath))
	require.NoError(t, err)
	assert.Equal(t, "flag-json.db", cfg.Storage.DSN)
}

func TestGetClientConfig_MissingExplicitFiles(t *testing.T) {
	_, err := GetClientConfig(newClientFlagSet(t, "--config", "/does/not/exist.json"))
	assert.Error(t, err)

	_, err = GetClientConfig(newClientFlagSet(t, "--env-file", "/does/not/exist.env"))
	assert.Error(t, err)
}

func TestGetClientConfig_InvalidBaseURL(t *testing.T) {
	_, err := GetClientConfig(newClientFlagSet(t, "-u", "localhost:8080"))
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost:5432/contracts")

	_, err := GetServerConfig(newServerFlagSet(t))
	assert.ErrorIs(t, err, ErrInvalidAppConfigs, "sign key is required")

	cfg, err := GetServerConfig(newServerFlagSet(t,
		"--token-sign-key", "secret",
		"-a", "127.0.0.1:9000",
		"--token-duration", "2h",
	))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddress)
	assert.Equal(t, "secret", cfg.TokenSignKey)
	assert.Equal(t, "contract-sync", cfg.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.TokenDuration)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestGetServerConfig_MissingDSN(t *testing.T) {
	_, err := GetServerConfig(newServerFlagSet(t, "--token-sign-key", "secret"))
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
