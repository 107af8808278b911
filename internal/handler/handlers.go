// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package handler

import (
	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/handler/http"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.App.Version, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
