// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, verification-state updates, and
// cleanup sweeps against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// userScanner matches both *sql.Row and *sql.Rows.
type userScanner interface {
	Scan(dest ...any) error
}

// scanUser reads the full users column list into a [models.User].
// Column order must match the RETURNING and SELECT lists in sql_queries.go.
func scanUser(s userScanner) (models.User, error) {
	var u models.User
	err := s.Scan(
		&u.UserID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.EmailVerified,
		&u.VerificationCode,
		&u.VerificationCodeExpiry,
		&u.VerificationAttempts,
		&u.VerificationLockedUntil,
		&u.LastVerificationSentAt,
		&u.ResendWindowStart,
		&u.ResendCountInWindow,
		&u.Version,
		&u.CreatedAt,
	)
	return u, err
}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with server-assigned fields (UserID, Version, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique_violation (23505) on the username constraint -> [ErrUsernameAlreadyExists].
//   - unique_violation (23505) on the email constraint -> [ErrEmailAlreadyExists].
//   - Any other driver-level error -> wrapped as "unexpected DB error".
//   - Scan failure -> returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.EmailVerified,
		user.VerificationCode,
		user.VerificationCodeExpiry,
		user.LastVerificationSentAt,
		user.ResendWindowStart,
		user.ResendCountInWindow,
	)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			if postgresConstraint(err) == "users_email_key" {
				return models.User{}, ErrEmailAlreadyExists
			}
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByUsername retrieves the account record with the given username.
//
// Error handling:
//   - Empty result set -> [ErrUserNotFound].
//   - Any other driver-level error -> wrapped as "unexpected DB error".
//   - Scan failure -> returned directly.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, findUserByUsername, username, "*userRepository.FindUserByUsername")
}

// FindUserByEmail retrieves the account record with the given normalized
// email. Error handling matches [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email, "*userRepository.FindUserByEmail")
}

// FindUserByID retrieves the account record with the given identifier.
// Error handling matches [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID, "*userRepository.FindUserByID")
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any, fn string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error: row is nil")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.User{}, ErrUserNotFound
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	found, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", fn).Msg("error: scanning error")
		return models.User{}, err
	}

	return found, nil
}

// UpdateUser writes the mutable account fields back under an
// optimistic-locking guard and returns the post-update record.
//
// The UPDATE is built dynamically, bumps the version column, and pins the
// WHERE clause to the version the caller read. An empty result set means the
// guarded row no longer exists in that version: the method re-checks whether
// the user still exists at all and reports [ErrVersionConflict] or
// [ErrUserNotFound] accordingly.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Int64("user_id", user.UserID).
			Msg("failed to build update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// version guard rejected the write or the row is gone
			if _, findErr := r.FindUserByUsername(ctx, user.Username); errors.Is(findErr, ErrUserNotFound) {
				return models.User{}, ErrUserNotFound
			}
			return models.User{}, ErrVersionConflict
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("error: scanning error")
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser removes the account with the given identifier.
//
// Error handling:
//   - Zero affected rows -> [ErrUserNotFound].
//   - Driver-level error -> wrapped as [ErrExecutingStatement].
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUserByID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.DeleteUser").
			Int64("user_id", userID).
			Msg("failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// FindAllVerified lists every account whose email has been confirmed,
// ordered by identifier.
func (r *userRepository) FindAllVerified(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAllVerifiedUsers)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.FindAllVerified").
			Msg("failed to execute query for verified users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*userRepository.FindAllVerified").
				Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, u)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*userRepository.FindAllVerified").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// DeleteStaleUnverified removes unverified accounts whose verification code
// expired before the cutoff. Returns the number of deleted rows.
func (r *userRepository) DeleteStaleUnverified(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteStaleUnverifiedQuery(cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.DeleteStaleUnverified").
			Msg("failed to build cleanup query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.DeleteStaleUnverified").
			Time("cutoff", cutoff).
			Msg("failed to delete stale unverified users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
