// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"context"
	"time"

	"github.com/vkrasov/veriauth/models"
)

// UserRepository provides persistence for user accounts and their
// verification state.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, Version, CreatedAt) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves the account with the given username.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail retrieves the account with the given normalized email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the account with the given identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser writes the mutable fields of the account back to the
	// database. The update is guarded by the Version the caller read;
	// when a concurrent update has bumped the version in the meantime,
	// ErrVersionConflict is returned and nothing is written.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser removes the account with the given identifier.
	DeleteUser(ctx context.Context, userID int64) error

	// FindAllVerified lists every account whose email has been confirmed.
	FindAllVerified(ctx context.Context) ([]models.User, error)

	// DeleteStaleUnverified removes unverified accounts whose verification
	// code expired before the cutoff. Returns the number of deleted rows.
	DeleteStaleUnverified(ctx context.Context, cutoff time.Time) (int64, error)
}

// ResetTokenRepository provides persistence for password-reset tokens.
type ResetTokenRepository interface {
	// CreateToken persists a new reset token record and returns it with
	// server-assigned fields (ID, CreatedAt) populated.
	CreateToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error)

	// FindLatestByTokenHash retrieves the most recently issued token record
	// matching the given hash. Older records with the same hash are ignored.
	FindLatestByTokenHash(ctx context.Context, tokenHash string) (models.PasswordResetToken, error)

	// DeleteToken removes the token record with the given identifier.
	DeleteToken(ctx context.Context, id int64) error

	// DeleteExpired removes token records that expired before the cutoff.
	// Returns the number of deleted rows.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
