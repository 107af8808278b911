// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

// Package adapter implements the client side of the account service's REST
// API. It is consumed by the authctl command-line tool.
package adapter

import (
	"context"

	"github.com/vkrasov/veriauth/models"
)

// ServerAdapter is the client-side surface of the account service. A bearer
// token obtained from Login is held by the adapter and attached to all
// subsequent authenticated requests.
type ServerAdapter interface {
	// SetToken stores a bearer token for authenticated requests.
	SetToken(token string)
	// Token returns the currently held bearer token, if any.
	Token() string

	// Register creates an unverified account and triggers the
	// verification email.
	Register(ctx context.Context, req models.RegisterRequest) (models.MessageResponse, error)
	// VerifyEmail confirms an account with the emailed code.
	VerifyEmail(ctx context.Context, req models.VerifyRequest) (models.MessageResponse, error)
	// ResendVerification requests a fresh verification code.
	ResendVerification(ctx context.Context, email string) (models.MessageResponse, error)
	// VerificationStatus reports the verification state of an email.
	VerificationStatus(ctx context.Context, email string) (models.VerificationStatusResponse, error)
	// Login authenticates and stores the issued bearer token.
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	// ForgotPassword requests a password-reset link.
	ForgotPassword(ctx context.Context, email string) (models.MessageResponse, error)
	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, newPassword string) (models.MessageResponse, error)
	// Me returns the authenticated account's public projection.
	Me(ctx context.Context) (models.UserResponse, error)
	// Users lists all verified accounts.
	Users(ctx context.Context) ([]models.UserResponse, error)
	// ServerVersion returns the server's version string.
	ServerVersion(ctx context.Context) (string, error)
}
