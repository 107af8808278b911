// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/models"
)

// resetTokenRepository is the PostgreSQL-backed implementation of
// [ResetTokenRepository] over the "password_reset_tokens" table.
type resetTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewResetTokenRepository constructs a [ResetTokenRepository] backed by the
// provided database connection and logger.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateToken persists a new reset token record and returns the fully
// populated [models.PasswordResetToken] with server-assigned fields
// (ID, CreatedAt).
func (r *resetTokenRepository) CreateToken(ctx context.Context, token models.PasswordResetToken) (models.PasswordResetToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createResetToken, token.TokenHash, token.UserID, token.ExpiresAt)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.CreateToken").
			Int64("user_id", token.UserID).
			Msg("error: row is nil")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var created models.PasswordResetToken
	if err := row.Scan(&created.ID, &created.TokenHash, &created.UserID, &created.ExpiresAt, &created.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.CreateToken").
			Int64("user_id", token.UserID).
			Msg("error: scanning error")
		return models.PasswordResetToken{}, err
	}

	return created, nil
}

// FindLatestByTokenHash retrieves the most recently issued token record with
// the given hash. When several records share a hash, the highest ID wins.
//
// Error handling:
//   - Empty result set -> [ErrTokenNotFound].
//   - Any other driver-level error -> wrapped as "unexpected DB error".
func (r *resetTokenRepository) FindLatestByTokenHash(ctx context.Context, tokenHash string) (models.PasswordResetToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findLatestResetTokenByHash, tokenHash)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.FindLatestByTokenHash").
			Msg("error: row is nil")
		return models.PasswordResetToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var found models.PasswordResetToken
	if err := row.Scan(&found.ID, &found.TokenHash, &found.UserID, &found.ExpiresAt, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordResetToken{}, ErrTokenNotFound
		}
		log.Err(err).
			Str("func", "*resetTokenRepository.FindLatestByTokenHash").
			Msg("error: scanning error")
		return models.PasswordResetToken{}, err
	}

	return found, nil
}

// DeleteToken removes the token record with the given identifier.
//
// Error handling:
//   - Zero affected rows -> [ErrTokenNotFound].
//   - Driver-level error -> wrapped as [ErrExecutingStatement].
func (r *resetTokenRepository) DeleteToken(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteResetTokenByID, id)
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.DeleteToken").
			Int64("id", id).
			Msg("failed to delete reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// DeleteExpired removes token records that expired before the cutoff.
// Returns the number of deleted rows.
func (r *resetTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredResetTokensQuery(cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.DeleteExpired").
			Msg("failed to build cleanup query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.DeleteExpired").
			Time("cutoff", cutoff).
			Msg("failed to delete expired reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
