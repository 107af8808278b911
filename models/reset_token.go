// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package models

import "time"

// PasswordResetToken is the persisted record of an outstanding
// password-reset token. Only the HMAC-SHA256 hash of the opaque token is
// stored; the raw token exists solely inside the reset link emailed to
// the user.
type PasswordResetToken struct {
	// ID is a monotonically increasing identifier. When several tokens
	// exist for the same hash, lookups return the one with the highest
	// ID; only the latest token is authoritative.
	ID int64 `json:"-"`

	// TokenHash is the hex-encoded HMAC-SHA256 digest of the raw token.
	TokenHash string `json:"-"`

	// UserID references the account the token belongs to.
	UserID int64 `json:"-"`

	// ExpiresAt is the single-use validity deadline.
	ExpiresAt time.Time `json:"-"`

	// CreatedAt is the issuance timestamp.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the PasswordResetToken model.
func (t PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
