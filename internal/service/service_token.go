// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
)

// tokenService issues and validates the HMAC-signed JWT tokens returned on
// login. The subject claim carries the account username.
type tokenService struct {
	tokenIssuer   string
	tokenDuration time.Duration
	tokenSignKey  string
	logger        *logger.Logger
}

// NewTokenService constructs a [TokenService] with the signing parameters
// from cfg.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		tokenSignKey:  cfg.TokenSignKey,
		logger:        logger,
	}
}

// CreateToken issues a signed token for the given account.
func (s *tokenService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.Username, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a compact token string and extracts its claims.
// Every validation failure is reported as ErrTokenIsExpiredOrInvalid so
// callers cannot distinguish a forged token from a stale one.
func (s *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("token validation failed")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
