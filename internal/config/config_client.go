// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientAdapter holds the settings of the client's RemoteClient.
type ClientAdapter struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ClientStorage holds the local SQLite database path.
type ClientStorage struct {
	DSN string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	SyncInterval time.Duration
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	LogFile string
	Version string
}

// GetClientConfig builds and validates the client configuration. fs holds
// flags registered by [RegisterClientFlags] and may be nil.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(RoleClient, fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DB.DSN},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		LogFile: cfg.Log.FilePath,
		Version: cfg.App.Version,
	}

	return clientCfg, clientCfg.validate()
}
