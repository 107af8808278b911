// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/store"
	"github.com/vkrasov/veriauth/models"
	"golang.org/x/crypto/bcrypt"
)

// Verification policy constants. The resend policy combines a short cooldown
// between consecutive sends with a rolling-window cap.
const (
	// verificationCodeTTL is how long an emailed code stays redeemable.
	verificationCodeTTL = 10 * time.Minute

	// resendCooldown is the minimum gap between two verification emails.
	resendCooldown = 60 * time.Second

	// resendWindow is the rolling window the resend cap applies to.
	resendWindow = 60 * time.Minute

	// maxResendsPerWindow caps how many codes may be sent per window.
	maxResendsPerWindow = 5
)

// verificationService is the concrete implementation of
// [VerificationService]. It drives the account state machine: registration
// with an emailed code, code verification with an optional lockout policy,
// throttled resends, and verified-only login.
type verificationService struct {
	// userRepository is the data-access layer used to create and mutate
	// accounts.
	userRepository store.UserRepository

	// notifier delivers verification emails. Send failures roll the
	// account back to its pre-send state.
	notifier Notifier

	// bcryptCost is the cost used when hashing passwords. Zero selects the
	// bcrypt default.
	bcryptCost int

	// maxVerifyAttempts enables the lockout policy when positive: that
	// many wrong codes in a row lock the account for lockDuration.
	maxVerifyAttempts int

	// lockDuration is how long a locked account rejects verification.
	lockDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger

	// now and newCode are indirections for deterministic tests.
	now     func() time.Time
	newCode func() string
}

// NewVerificationService constructs a [VerificationService] wired to the
// given repository and notifier, with policy knobs taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewVerificationService(userRepository store.UserRepository, notifier Notifier, cfg config.App, logger *logger.Logger) VerificationService {
	return &verificationService{
		userRepository:    userRepository,
		notifier:          notifier,
		bcryptCost:        cfg.PasswordHashCost,
		maxVerifyAttempts: cfg.MaxVerifyAttempts,
		lockDuration:      cfg.VerifyLockDuration,
		logger:            logger,
		now:               time.Now,
		newCode:           generateVerificationCode,
	}
}

// generateVerificationCode returns a random six-digit numeric code.
func generateVerificationCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// Register creates an unverified account and emails it a verification code.
//
// When the email already belongs to a verified account, ErrEmailTaken is
// returned. When it belongs to a pending account, the outstanding code is
// replaced and re-sent instead of failing, so users can retry registration
// after losing the first email.
//
// The send is the last step. If it fails, a freshly created account is
// deleted and a refreshed pending account is rolled back to its previous
// code, so no account ends up pointing at a code that was never delivered.
func (s *verificationService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	email := models.NormalizeEmail(req.Email)

	// The username must not belong to a different account even when the
	// requested email only has a pending registration on it. A hit with the
	// same email is the same account re-registering and falls through to the
	// pending-code refresh below.
	byUsername, err := s.userRepository.FindUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if models.NormalizeEmail(byUsername.Email) != email {
			return models.User{}, ErrUsernameTaken
		}
	case errors.Is(err, store.ErrUserNotFound):
	default:
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	existing, err := s.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.EmailVerified {
			return models.User{}, ErrEmailTaken
		}
		return s.refreshPendingCode(ctx, existing)
	case errors.Is(err, store.ErrUserNotFound):
		// fresh registration
	default:
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := s.now()
	code := s.newCode()
	expiry := now.Add(verificationCodeTTL)

	user := models.User{
		Username:               req.Username,
		Email:                  email,
		PasswordHash:           passwordHash,
		EmailVerified:          false,
		VerificationCode:       &code,
		VerificationCodeExpiry: &expiry,
		LastVerificationSentAt: &now,
		ResendWindowStart:      &now,
		ResendCountInWindow:    1,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		switch {
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.User{}, ErrUsernameTaken
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.User{}, ErrEmailTaken
		default:
			return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
		}
	}

	if err := s.notifier.SendVerificationCode(ctx, created.Email, code); err != nil {
		log.Err(err).Int64("user_id", created.UserID).Msg("verification email failed, rolling back registration")
		if deleteErr := s.userRepository.DeleteUser(ctx, created.UserID); deleteErr != nil {
			log.Err(deleteErr).Int64("user_id", created.UserID).Msg("registration rollback failed")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return created, nil
}

// refreshPendingCode replaces the outstanding code of an unverified account
// and re-sends it, rolling the record back on send failure.
func (s *verificationService) refreshPendingCode(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	oldCode := user.VerificationCode
	oldExpiry := user.VerificationCodeExpiry
	oldSentAt := user.LastVerificationSentAt

	now := s.now()
	code := s.newCode()
	expiry := now.Add(verificationCodeTTL)

	user.VerificationCode = &code
	user.VerificationCodeExpiry = &expiry
	user.LastVerificationSentAt = &now
	user.VerificationAttempts = 0
	user.VerificationLockedUntil = nil

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, s.wrapUpdateError(ctx, err, user.UserID, "refreshing pending code failed")
	}

	if err := s.notifier.SendVerificationCode(ctx, updated.Email, code); err != nil {
		log.Err(err).Int64("user_id", updated.UserID).Msg("verification email failed, restoring previous code")

		updated.VerificationCode = oldCode
		updated.VerificationCodeExpiry = oldExpiry
		updated.LastVerificationSentAt = oldSentAt
		if _, rollbackErr := s.userRepository.UpdateUser(ctx, updated); rollbackErr != nil {
			log.Err(rollbackErr).Int64("user_id", updated.UserID).Msg("code rollback failed")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return updated, nil
}

// RegisterLegacy creates a pre-verified account from bare credentials.
// The username doubles as the unique email column value. No email is sent.
func (s *verificationService) RegisterLegacy(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Username:      req.Username,
		Email:         models.NormalizeEmail(req.Username),
		PasswordHash:  passwordHash,
		EmailVerified: true,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("legacy user creation ended with error")
		switch {
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.User{}, ErrUsernameTaken
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.User{}, ErrEmailTaken
		default:
			return models.User{}, fmt.Errorf("legacy user creation ended with error: %w", err)
		}
	}

	return created, nil
}

// VerifyEmail confirms an account with its emailed code.
//
// Outcomes:
//   - unknown email -> ErrUserNotFound
//   - already verified -> ErrAlreadyVerified
//   - locked by the lockout policy -> ErrVerificationLocked
//   - wrong or missing code -> ErrInvalidVerificationCode (counted against
//     the lockout policy when enabled)
//   - correct but expired code -> ErrVerificationCodeExpired
//
// On success the account is marked verified and the code is cleared.
func (s *verificationService) VerifyEmail(ctx context.Context, req models.VerifyRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.VerificationCode == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	email := models.NormalizeEmail(req.Email)

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.EmailVerified {
		return models.User{}, ErrAlreadyVerified
	}

	now := s.now()

	if s.maxVerifyAttempts > 0 && user.VerificationLockedUntil != nil && now.Before(*user.VerificationLockedUntil) {
		return models.User{}, ErrVerificationLocked
	}

	// Code comparison comes before the expiry check, so a guess against an
	// expired record still reads as a wrong code and counts as an attempt.
	if user.VerificationCode == nil || *user.VerificationCode != req.VerificationCode {
		if s.maxVerifyAttempts > 0 {
			user.VerificationAttempts++
			if user.VerificationAttempts >= s.maxVerifyAttempts {
				lockedUntil := now.Add(s.lockDuration)
				user.VerificationLockedUntil = &lockedUntil
				user.VerificationAttempts = 0
			}
			if _, updateErr := s.userRepository.UpdateUser(ctx, user); updateErr != nil {
				log.Err(updateErr).Int64("user_id", user.UserID).Msg("recording failed verification attempt failed")
			}
		}
		return models.User{}, ErrInvalidVerificationCode
	}

	if user.VerificationCodeExpiry == nil || now.After(*user.VerificationCodeExpiry) {
		return models.User{}, ErrVerificationCodeExpired
	}

	user.EmailVerified = true
	user.VerificationCode = nil
	user.VerificationCodeExpiry = nil
	user.VerificationAttempts = 0
	user.VerificationLockedUntil = nil

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, s.wrapUpdateError(ctx, err, user.UserID, "marking user verified failed")
	}

	return updated, nil
}

// ResendVerificationCode issues a fresh code for a pending account.
//
// Two throttles apply before anything is written:
//   - a cooldown since the previous send -> ErrResendCooldown
//   - a cap per rolling window -> ErrResendLimitExceeded
//
// Throttled requests leave the stored record untouched. A successful resend
// also clears the lockout state, giving the user a clean slate with the new
// code. On send failure the record is rolled back to the previous code.
func (s *verificationService) ResendVerificationCode(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	normalized := models.NormalizeEmail(email)

	user, err := s.userRepository.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("email", normalized).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.EmailVerified {
		return models.User{}, ErrAlreadyVerified
	}

	now := s.now()

	if user.LastVerificationSentAt != nil && now.Sub(*user.LastVerificationSentAt) < resendCooldown {
		return models.User{}, ErrResendCooldown
	}

	if user.ResendWindowStart == nil || now.Sub(*user.ResendWindowStart) >= resendWindow {
		windowStart := now
		user.ResendWindowStart = &windowStart
		user.ResendCountInWindow = 0
	}
	if user.ResendCountInWindow >= maxResendsPerWindow {
		return models.User{}, ErrResendLimitExceeded
	}

	oldCode := user.VerificationCode
	oldExpiry := user.VerificationCodeExpiry
	oldSentAt := user.LastVerificationSentAt

	code := s.newCode()
	expiry := now.Add(verificationCodeTTL)

	user.VerificationCode = &code
	user.VerificationCodeExpiry = &expiry
	user.LastVerificationSentAt = &now
	user.ResendCountInWindow++
	user.VerificationAttempts = 0
	user.VerificationLockedUntil = nil

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, s.wrapUpdateError(ctx, err, user.UserID, "resend update failed")
	}

	if err := s.notifier.SendVerificationCode(ctx, updated.Email, code); err != nil {
		log.Err(err).Int64("user_id", updated.UserID).Msg("verification email failed, restoring previous code")

		updated.VerificationCode = oldCode
		updated.VerificationCodeExpiry = oldExpiry
		updated.LastVerificationSentAt = oldSentAt
		updated.ResendCountInWindow--
		if _, rollbackErr := s.userRepository.UpdateUser(ctx, updated); rollbackErr != nil {
			log.Err(rollbackErr).Int64("user_id", updated.UserID).Msg("code rollback failed")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return updated, nil
}

// Login authenticates credentials against a verified account.
//
// Unknown usernames and wrong passwords are both reported as
// ErrInvalidCredentials. An unverified account is rejected with
// ErrEmailNotVerified before the password is even checked, matching the
// verify-first account lifecycle.
func (s *verificationService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !user.EmailVerified {
		return models.User{}, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Error().Int64("user_id", user.UserID).Str("username", user.Username).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// VerificationStatus reports the verification snapshot for an email without
// mutating any state. An account with no expiry on record is reported as
// expired, the same as one whose code timed out.
func (s *verificationService) VerificationStatus(ctx context.Context, email string) (models.VerificationStatusResponse, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return models.VerificationStatusResponse{}, ErrInvalidDataProvided
	}

	normalized := models.NormalizeEmail(email)

	user, err := s.userRepository.FindUserByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.VerificationStatusResponse{Status: models.StatusNotFound, Email: normalized}, nil
		}
		log.Err(err).Str("email", normalized).Msg("user search by email failed")
		return models.VerificationStatusResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.EmailVerified {
		return models.VerificationStatusResponse{Status: models.StatusVerified, Email: normalized}, nil
	}

	if user.VerificationCodeExpiry == nil {
		return models.VerificationStatusResponse{Status: models.StatusExpired, Email: normalized}, nil
	}

	expiresAt := user.VerificationCodeExpiry.Format(time.RFC3339)
	if s.now().After(*user.VerificationCodeExpiry) {
		return models.VerificationStatusResponse{Status: models.StatusExpired, Email: normalized, ExpiresAt: expiresAt}, nil
	}

	return models.VerificationStatusResponse{Status: models.StatusPending, Email: normalized, ExpiresAt: expiresAt}, nil
}

// ListVerifiedUsers lists every verified account.
func (s *verificationService) ListVerifiedUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAllVerified(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing verified users failed")
		return nil, fmt.Errorf("listing verified users failed: %w", err)
	}

	return users, nil
}

// CurrentUser retrieves the account for an authenticated username.
func (s *verificationService) CurrentUser(ctx context.Context, username string) (models.User, error) {
	if username == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return user, nil
}

// hashPassword hashes a plain-text password with bcrypt at the configured
// cost. A zero cost falls through to the bcrypt default.
func (s *verificationService) hashPassword(password string) (string, error) {
	cost := s.bcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// wrapUpdateError normalizes repository update failures: version conflicts
// surface as ErrConcurrentUpdate, a vanished row as ErrUserNotFound.
func (s *verificationService) wrapUpdateError(ctx context.Context, err error, userID int64, msg string) error {
	logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg(msg)

	switch {
	case errors.Is(err, store.ErrVersionConflict):
		return ErrConcurrentUpdate
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
