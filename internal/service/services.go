// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
)

type Services struct {
	AuthService     AuthService
	ContractService ContractService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, AuthSettings{
			TokenSignKey:  cfg.TokenSignKey,
			TokenIssuer:   cfg.TokenIssuer,
			TokenDuration: cfg.TokenDuration,
		}, logger),
		ContractService: NewContractValidationService().Wrap(
			NewContractService(storages.ContractRepository, logger),
		),
	}
}
