// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	version   string

	logger *logger.Logger
}

func NewHandler(services *service.Services, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewContractValidator(),
		version:   version,
		logger:    logger,
	}
}
