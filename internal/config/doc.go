// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the contract client and the reference server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults for the role
//  2. JSON config file (-c / --config or CONFIG)
//  3. .env file (--env-file or ENV_FILE, ".env" when present)
//  4. Environment variables
//  5. Command-line flags registered on a pflag.FlagSet
//
// The main entry points are [GetClientConfig] and [GetServerConfig].
package config
