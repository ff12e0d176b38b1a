// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

const (
	flagConfig         = "config"
	flagEnvFile        = "env-file"
	flagDSN            = "dsn"
	flagRequestTimeout = "request-timeout"
	flagServerURL      = "server-url"
	flagSyncInterval   = "sync-interval"
	flagLogFile        = "log-file"
	flagAddress        = "address"
	flagTokenSignKey   = "token-sign-key"
	flagTokenIssuer    = "token-issuer"
	flagTokenDuration  = "token-duration"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

func registerCommonFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON config file path")
	fs.String(flagEnvFile, "", "Path to a .env file (default \".env\" when present)")
	fs.StringP(flagDSN, "d", "", "Database DSN")
	fs.Duration(flagRequestTimeout, 0, "Request timeout (e.g. 5s, 1m)")
}

// RegisterClientFlags registers the client flags on fs.
//
// Flags:
//
//	-c/--config        json file path with configs
//	--env-file         .env file path
//	-d/--dsn           local SQLite database path
//	--request-timeout  per-request timeout of the remote client
//	-u/--server-url    contract API base URL
//	--sync-interval    scheduled sync period
//	--log-file         rotated log file path
func RegisterClientFlags(fs *pflag.FlagSet) {
	registerCommonFlags(fs)
	fs.StringP(flagServerURL, "u", "", "Contract API base URL")
	fs.Duration(flagSyncInterval, 0, "Scheduled sync interval (e.g. 5m)")
	fs.String(flagLogFile, "", "Log file path")
}

// RegisterServerFlags registers the server flags on fs.
//
// Flags:
//
//	-c/--config        json file path with configs
//	--env-file         .env file path
//	-d/--dsn           PostgreSQL DSN
//	--request-timeout  inbound request timeout
//	-a/--address       listen address host:port
//	--token-sign-key   token signing key
//	--token-issuer     token issuer name
//	--token-duration   token duration (e.g. 1h, 30m)
func RegisterServerFlags(fs *pflag.FlagSet) {
	registerCommonFlags(fs)
	fs.VarP(&NetAddress{}, flagAddress, "a", "Net address host:port")
	fs.String(flagTokenSignKey, "", "Token signing key")
	fs.String(flagTokenIssuer, "", "Token issuer")
	fs.Duration(flagTokenDuration, 0, "Token duration (e.g. 1h, 30m)")
}

// parseFlags maps the flags set on the command line into a config. Flags
// that were not changed are left zero so they never override other sources.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var err error

	str := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	dur := func(name string, dst *time.Duration) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			v, e := fs.GetDuration(name)
			err = errors.Join(err, e)
			*dst = v
		}
	}

	str(flagConfig, &cfg.JSONFilePath)
	str(flagEnvFile, &cfg.EnvFilePath)
	str(flagDSN, &cfg.Storage.DB.DSN)
	str(flagServerURL, &cfg.Adapter.BaseURL)
	str(flagLogFile, &cfg.Log.FilePath)
	str(flagAddress, &cfg.Server.HTTPAddress)
	str(flagTokenSignKey, &cfg.App.TokenSignKey)
	str(flagTokenIssuer, &cfg.App.TokenIssuer)
	dur(flagSyncInterval, &cfg.Workers.SyncInterval)
	dur(flagTokenDuration, &cfg.App.TokenDuration)

	var timeout time.Duration
	dur(flagRequestTimeout, &timeout)
	cfg.Adapter.RequestTimeout = timeout
	cfg.Server.RequestTimeout = timeout

	if err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
