// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/handler"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/server"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("contract-server")

	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.GetServerConfig(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildInfo.Version
	}

	log.Debug().Str("address", cfg.HTTPAddress).Dur("request_timeout", cfg.RequestTimeout).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		storages.Close()
		os.Exit(1)
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
