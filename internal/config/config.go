// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the server. Each role projects the part it needs through
// [GetClientConfig] or [GetServerConfig].
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeout of the reference server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote API settings used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a .env file.
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level values that control token lifecycle and
// versioning.
type App struct {
	// TokenSignKey signs and verifies JWT tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection string. The client uses a SQLite file
// path, the server a PostgreSQL URI.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the "host:port" the server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound settings of the client's RemoteClient.
type Adapter struct {
	// BaseURL is the root URL of the contract API (e.g. "http://localhost:8080").
	// A value stored in the persisted sync settings takes precedence at runtime.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncInterval is the period of the scheduled sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds log output settings.
type Log struct {
	// FilePath is the rotated log file used by the client. Empty means
	// "client.log" next to the executable.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// Role selects the defaults applied before any other source.
type Role string

const (
	RoleClient Role = "client"
	RoleServer Role = "server"
)

func defaults(role Role) *StructuredConfig {
	switch role {
	case RoleServer:
		return &StructuredConfig{
			App: App{
				TokenIssuer:   "contract-sync",
				TokenDuration: 24 * time.Hour,
			},
			Server: Server{
				HTTPAddress:    "localhost:8080",
				RequestTimeout: 30 * time.Second,
			},
		}
	default:
		return &StructuredConfig{
			Storage: Storage{DB: DB{DSN: "contracts.db"}},
			Adapter: Adapter{
				BaseURL:        "http://localhost:8080",
				RequestTimeout: 5 * time.Second,
			},
			Workers: Workers{SyncInterval: 5 * time.Minute},
		}
	}
}
