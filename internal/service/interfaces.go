// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/vkrasov/veriauth/models"
)

// VerificationService owns the email-verification account lifecycle:
// registration, code verification, resend throttling, login gating, and
// read-only status queries.
type VerificationService interface {
	// Register creates an unverified account and emails it a verification
	// code. Re-registering an email that is still unverified refreshes the
	// code instead of failing.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// RegisterLegacy creates a pre-verified account from bare credentials.
	// No verification email is sent.
	RegisterLegacy(ctx context.Context, req models.LoginRequest) (models.User, error)

	// VerifyEmail confirms an account with the code that was emailed to it.
	VerifyEmail(ctx context.Context, req models.VerifyRequest) (models.User, error)

	// ResendVerificationCode issues a fresh code for a pending account,
	// subject to the cooldown and rolling-window resend policies.
	ResendVerificationCode(ctx context.Context, email string) (models.User, error)

	// Login authenticates bare credentials against a verified account.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// VerificationStatus reports the verification snapshot for an email
	// without mutating any state.
	VerificationStatus(ctx context.Context, email string) (models.VerificationStatusResponse, error)

	// ListVerifiedUsers lists every verified account.
	ListVerifiedUsers(ctx context.Context) ([]models.User, error)

	// CurrentUser retrieves the account for an authenticated username.
	CurrentUser(ctx context.Context, username string) (models.User, error)
}

// PasswordResetService owns the credential-recovery token lifecycle.
type PasswordResetService interface {
	// ForgotPassword issues a single-use reset token and emails the reset
	// link. It deliberately reports success whether or not the email is
	// registered, so callers cannot probe for accounts.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and replaces the account
	// password.
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// TokenService issues and validates the bearer tokens returned on login.
type TokenService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// Notifier delivers outbound account emails.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetLink(ctx context.Context, email, link string) error
}
