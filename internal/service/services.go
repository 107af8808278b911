// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

import (
	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/store"
)

type Services struct {
	VerificationService  VerificationService
	PasswordResetService PasswordResetService
	TokenService         TokenService
}

func NewServices(repositories *store.Repositories, notifier Notifier, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		VerificationService:  NewVerificationService(repositories.UserRepository, notifier, cfg.App, logger),
		PasswordResetService: NewPasswordResetService(repositories.UserRepository, repositories.ResetTokenRepository, notifier, cfg.App, logger),
		TokenService:         NewTokenService(cfg.App, logger),
	}
}
