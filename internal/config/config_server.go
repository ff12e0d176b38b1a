// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ServerConfig is the reference server view of [StructuredConfig].
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	DSN            string
	TokenSignKey   string
	TokenIssuer    string
	TokenDuration  time.Duration
	Version        string
}

// GetServerConfig builds and validates the server configuration. fs holds
// flags registered by [RegisterServerFlags] and may be nil.
func GetServerConfig(fs *pflag.FlagSet) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(RoleServer, fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		TokenSignKey:   cfg.App.TokenSignKey,
		TokenIssuer:    cfg.App.TokenIssuer,
		TokenDuration:  cfg.App.TokenDuration,
		Version:        cfg.App.Version,
	}

	return serverCfg, serverCfg.validate()
}
