// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/store"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long an emailed reset link stays redeemable.
const resetTokenTTL = 10 * time.Minute

// resetTokenBytes is the entropy of the raw reset token before hex encoding.
const resetTokenBytes = 32

// passwordResetService is the concrete implementation of
// [PasswordResetService]. Raw tokens leave the process only inside the reset
// link; the database sees their keyed HMAC-SHA256 hash.
type passwordResetService struct {
	userRepository  store.UserRepository
	tokenRepository store.ResetTokenRepository
	notifier        Notifier
	resetURLBase    string
	bcryptCost      int
	logger          *logger.Logger

	// now and newRawToken are indirections for deterministic tests.
	now         func() time.Time
	newRawToken func() (string, error)
}

// NewPasswordResetService constructs a [PasswordResetService]. It initializes
// the shared hasher pool with cfg.HashKey; every token hash afterwards draws
// from that pool.
func NewPasswordResetService(userRepository store.UserRepository, tokenRepository store.ResetTokenRepository, notifier Notifier, cfg config.App, logger *logger.Logger) PasswordResetService {
	utils.InitHasherPool(cfg.HashKey)

	return &passwordResetService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		notifier:        notifier,
		resetURLBase:    cfg.ResetURLBase,
		bcryptCost:      cfg.PasswordHashCost,
		logger:          logger,
		now:             time.Now,
		newRawToken:     generateRawResetToken,
	}
}

// generateRawResetToken returns a hex-encoded random token.
func generateRawResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes failed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ForgotPassword issues a single-use reset token for the account behind the
// email and mails the reset link.
//
// The caller learns nothing about whether the email is registered: an unknown
// address returns nil exactly like a successful issue. Older tokens for the
// same account are left in place; lookups resolve to the newest row, so
// issuing a new token implicitly retires the previous link.
func (s *passwordResetService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	normalized := models.NormalizeEmail(email)

	user, err := s.userRepository.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("email", normalized).Msg("reset requested for unknown email")
			return nil
		}
		log.Err(err).Str("email", normalized).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	rawToken, err := s.newRawToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	token := models.PasswordResetToken{
		TokenHash: hex.EncodeToString(utils.Hash([]byte(rawToken))),
		UserID:    user.UserID,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}

	if _, err := s.tokenRepository.CreateToken(ctx, token); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("reset token creation failed")
		return fmt.Errorf("reset token creation failed: %w", err)
	}

	// A failed send is logged but not surfaced: the caller gets the same
	// generic answer either way, so the response leaks nothing about whether
	// the email exists.
	link := s.resetURLBase + "?token=" + rawToken
	if err := s.notifier.SendPasswordResetLink(ctx, user.Email, link); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("reset email failed")
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
//
// The lookup resolves the raw token to the newest stored row with the same
// hash; a token superseded by a later ForgotPassword call therefore fails
// with ErrInvalidResetToken. The row is deleted after a successful password
// write, making the token single-use.
func (s *passwordResetService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	log := logger.FromContext(ctx)

	if rawToken == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	tokenHash := hex.EncodeToString(utils.Hash([]byte(rawToken)))

	token, err := s.tokenRepository.FindLatestByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return ErrInvalidResetToken
		}
		log.Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset token lookup failed: %w", err)
	}

	if s.now().After(token.ExpiresAt) {
		return ErrResetTokenExpired
	}

	user, err := s.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		log.Err(err).Int64("user_id", token.UserID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	cost := s.bcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), cost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user.PasswordHash = string(hashed)
	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("password update failed")
		if errors.Is(err, store.ErrVersionConflict) {
			return ErrConcurrentUpdate
		}
		return fmt.Errorf("password update failed: %w", err)
	}

	if err := s.tokenRepository.DeleteToken(ctx, token.ID); err != nil && !errors.Is(err, store.ErrTokenNotFound) {
		log.Err(err).Int64("token_id", token.ID).Msg("consumed reset token cleanup failed")
	}

	return nil
}
