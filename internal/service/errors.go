// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// Registration conflicts.
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")

	ErrUserNotFound = errors.New("user not found")

	// Verification failures.
	ErrAlreadyVerified         = errors.New("email is already verified")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrVerificationCodeExpired = errors.New("verification code expired")
	ErrVerificationLocked      = errors.New("verification is temporarily locked")

	// Resend throttling.
	ErrResendCooldown      = errors.New("verification code was requested too recently")
	ErrResendLimitExceeded = errors.New("too many verification codes requested")

	// Login failures.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email is not verified")

	// Password reset failures.
	ErrInvalidResetToken = errors.New("invalid password reset token")
	ErrResetTokenExpired = errors.New("password reset token expired")

	// ErrNotificationFailed wraps mailer failures that abort an operation.
	ErrNotificationFailed = errors.New("failed to send notification email")

	// ErrConcurrentUpdate is reported when a concurrent request mutated the
	// same account between read and write.
	ErrConcurrentUpdate = errors.New("account was modified concurrently")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
