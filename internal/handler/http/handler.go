// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/service"
)

type Handler struct {
	services *service.Services

	appVersion string

	logger *logger.Logger
}

func NewHandler(services *service.Services, appVersion string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		appVersion: appVersion,
		logger:     logger,
	}
}
