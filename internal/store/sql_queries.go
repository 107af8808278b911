// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/vkrasov/veriauth/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash, email_verified, verification_code, verification_code_expiry, last_verification_sent_at, resend_window_start, resend_count_in_window)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at
    FROM users
    WHERE user_id = $1;`

	findAllVerifiedUsers = `SELECT user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at
    FROM users
    WHERE email_verified = true
    ORDER BY user_id;`

	deleteUserByID = `DELETE FROM users
    WHERE user_id = $1;`

	createResetToken = `INSERT INTO password_reset_tokens (token_hash, user_id, expires_at)
    VALUES ($1, $2, $3)
    RETURNING id, token_hash, user_id, expires_at, created_at;`

	findLatestResetTokenByHash = `SELECT id, token_hash, user_id, expires_at, created_at
    FROM password_reset_tokens
    WHERE token_hash = $1
    ORDER BY id DESC
    LIMIT 1;`

	deleteResetTokenByID = `DELETE FROM password_reset_tokens
    WHERE id = $1;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateUserQuery builds the optimistic-locking UPDATE for a user
// record. Every mutable field is written back, the version column is bumped,
// and the WHERE clause pins both user_id and the version the caller read.
// A zero-row result therefore means a concurrent writer got there first.
func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.
		Update(user.TableName()).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("email_verified", user.EmailVerified).
		Set("verification_code", user.VerificationCode).
		Set("verification_code_expiry", user.VerificationCodeExpiry).
		Set("verification_attempts", user.VerificationAttempts).
		Set("verification_locked_until", user.VerificationLockedUntil).
		Set("last_verification_sent_at", user.LastVerificationSentAt).
		Set("resend_window_start", user.ResendWindowStart).
		Set("resend_count_in_window", user.ResendCountInWindow).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"user_id": user.UserID, "version": user.Version}).
		Suffix("RETURNING user_id, username, email, password_hash, email_verified, verification_code, verification_code_expiry, verification_attempts, verification_locked_until, last_verification_sent_at, resend_window_start, resend_count_in_window, version, created_at").
		ToSql()
}

// buildDeleteStaleUnverifiedQuery builds the cleanup DELETE removing
// unverified accounts whose code expired before the cutoff.
func buildDeleteStaleUnverifiedQuery(cutoff time.Time) (string, []any, error) {
	return psql.
		Delete("users").
		Where(sq.Eq{"email_verified": false}).
		Where(sq.Lt{"verification_code_expiry": cutoff}).
		ToSql()
}

// buildDeleteExpiredResetTokensQuery builds the cleanup DELETE removing
// reset tokens that expired before the cutoff.
func buildDeleteExpiredResetTokensQuery(cutoff time.Time) (string, []any, error) {
	return psql.
		Delete(models.PasswordResetToken{}.TableName()).
		Where(sq.Lt{"expires_at": cutoff}).
		ToSql()
}
