// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/spf13/pflag"
)

const defaultEnvFile = ".env"

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 5),
	}
}

// build merges the collected sources in insertion order; later non-zero
// fields override earlier ones.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withDefaults(role Role) *configBuilder {
	b.configs = append(b.configs, defaults(role))
	return b
}

func (b *configBuilder) withJSON(path string) *configBuilder {
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

// withDotEnv reads path without touching the process environment. A missing
// default ".env" is not an error; a missing explicit path is.
func (b *configBuilder) withDotEnv(path string) *configBuilder {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			b.err = errors.Join(b.err, fmt.Errorf("error reading env file: %w", err))
		}
		return b
	}

	dotEnvCfg := &StructuredConfig{}
	if err := parseDotEnv(path, dotEnvCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, dotEnvCfg)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(fs *pflag.FlagSet) *configBuilder {
	if fs == nil {
		return b
	}

	flagCfg, err := parseFlags(fs)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagCfg)
	return b
}

// GetStructuredConfig loads and merges the configuration for role. fs holds
// already-parsed flags registered by [RegisterClientFlags] or
// [RegisterServerFlags]; it may be nil.
func GetStructuredConfig(role Role, fs *pflag.FlagSet) (*StructuredConfig, error) {
	jsonPath := lookupPath(fs, flagConfig, "CONFIG")
	envFilePath := lookupPath(fs, flagEnvFile, "ENV_FILE")

	return newConfigBuilder().
		withDefaults(role).
		withJSON(jsonPath).
		withDotEnv(envFilePath).
		withEnv().
		withFlags(fs).
		build()
}

// lookupPath resolves a file path from a flag, falling back to an
// environment variable.
func lookupPath(fs *pflag.FlagSet, flagName, envName string) string {
	if fs != nil && fs.Changed(flagName) {
		if value, err := fs.GetString(flagName); err == nil {
			return value
		}
	}

	return os.Getenv(envName)
}
