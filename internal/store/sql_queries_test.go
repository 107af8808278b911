// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkrasov/veriauth/models"
)

func Test_buildUpdateUserQuery_SQLContainsParts(t *testing.T) {
	user := models.User{
		UserID:        42,
		Username:      "john",
		Email:         "john@example.com",
		PasswordHash:  "hash",
		EmailVerified: true,
		Version:       3,
	}

	query, args, err := buildUpdateUserQuery(user)
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "update users")
	require.Contains(t, q, "set")
	require.Contains(t, q, "where")
	require.Contains(t, q, "version + 1")
	require.Contains(t, q, "returning")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// guard columns
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "version")

	// both WHERE args must be present
	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, int64(3))
}

func Test_buildUpdateUserQuery_SetsAllMutableColumns(t *testing.T) {
	query, _, err := buildUpdateUserQuery(models.User{UserID: 1, Version: 1})
	require.NoError(t, err)

	q := strings.ToLower(query)

	cols := []string{
		"email",
		"password_hash",
		"email_verified",
		"verification_code",
		"verification_code_expiry",
		"verification_attempts",
		"verification_locked_until",
		"last_verification_sent_at",
		"resend_window_start",
		"resend_count_in_window",
	}
	for _, c := range cols {
		require.Contains(t, q, c)
	}

	// username is immutable and must not appear in the SET list
	assert.NotContains(t, q, "set username")
}

func Test_buildUpdateUserQuery_ReturnsFullColumnList(t *testing.T) {
	query, _, err := buildUpdateUserQuery(models.User{UserID: 1, Version: 1})
	require.NoError(t, err)

	returning := strings.ToLower(query[strings.Index(strings.ToLower(query), "returning"):])

	cols := []string{
		"user_id", "username", "email", "password_hash", "email_verified",
		"verification_code", "verification_code_expiry", "verification_attempts",
		"verification_locked_until", "last_verification_sent_at",
		"resend_window_start", "resend_count_in_window", "version", "created_at",
	}
	for _, c := range cols {
		require.Contains(t, returning, c)
	}
}

func Test_buildDeleteStaleUnverifiedQuery(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildDeleteStaleUnverifiedQuery(cutoff)
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "delete from users")
	require.Contains(t, q, "email_verified")
	require.Contains(t, q, "verification_code_expiry")
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$2")

	require.Len(t, args, 2)
	assert.Equal(t, false, args[0])
	assert.Equal(t, cutoff, args[1])
}

func Test_buildDeleteExpiredResetTokensQuery(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := buildDeleteExpiredResetTokensQuery(cutoff)
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "delete from password_reset_tokens")
	require.Contains(t, q, "expires_at")
	require.Contains(t, query, "$1")

	require.Len(t, args, 1)
	assert.Equal(t, cutoff, args[0])
}
