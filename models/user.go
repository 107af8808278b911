// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and email
// verification. It carries identity attributes, credential data, and the
// verification/resend state consulted by the verification engine.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier used during authentication.
	Username string `json:"username"`

	// Email is the unique, normalized (trimmed, lowercased) email address
	// of the account. Legacy accounts registered without an email carry
	// their normalized username here, keeping the column unique and non-null.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON, never stored in plain text.
	PasswordHash string `json:"-"`

	// EmailVerified reports whether the account's email has been confirmed.
	// Once true, VerificationCode and VerificationCodeExpiry are cleared
	// and never reused for the account's original code.
	EmailVerified bool `json:"email_verified"`

	// VerificationCode is the outstanding 6-digit verification code.
	// Nil while no code is outstanding (verified accounts, legacy accounts).
	VerificationCode *string `json:"-"`

	// VerificationCodeExpiry is the instant at which the outstanding code
	// stops being accepted. Nil when no code is outstanding.
	VerificationCodeExpiry *time.Time `json:"-"`

	// VerificationAttempts counts failed VerifyEmail calls since the last
	// code issuance. Consulted only when the lockout policy is enabled.
	VerificationAttempts int `json:"-"`

	// VerificationLockedUntil blocks further verification attempts until
	// the given instant. Nil when the account is not locked.
	VerificationLockedUntil *time.Time `json:"-"`

	// LastVerificationSentAt is the instant of the most recent code
	// dispatch. Drives the resend cooldown.
	LastVerificationSentAt *time.Time `json:"-"`

	// ResendWindowStart anchors the rolling resend-abuse window.
	ResendWindowStart *time.Time `json:"-"`

	// ResendCountInWindow counts resends inside the current rolling window.
	ResendCountInWindow int `json:"-"`

	// Version is the optimistic-concurrency counter checked by the store
	// on every state-mutating update.
	Version int64 `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address. Every lookup and storage comparison operates on the
// normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
