// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/models"
)

var resetTokenColumns = []string{"id", "token_hash", "user_id", "expires_at", "created_at"}

func newTestResetTokenRepo(t *testing.T) (*resetTokenRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &resetTokenRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateToken_Success(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	token := models.PasswordResetToken{
		TokenHash: "abcdef",
		UserID:    1,
		ExpiresAt: now.Add(time.Hour),
	}

	rows := sqlmock.
		NewRows(resetTokenColumns).
		AddRow(7, token.TokenHash, token.UserID, token.ExpiresAt, now)

	mock.ExpectQuery("INSERT INTO password_reset_tokens").
		WithArgs(token.TokenHash, token.UserID, token.ExpiresAt).
		WillReturnRows(rows)

	created, err := repo.CreateToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected ID=7, got %d", created.ID)
	}
	if created.TokenHash != token.TokenHash {
		t.Errorf("expected hash %s, got %s", token.TokenHash, created.TokenHash)
	}
}

func TestCreateToken_DBError(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO password_reset_tokens").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateToken(ctx, models.PasswordResetToken{TokenHash: "abc"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindLatestByTokenHash_Success(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(resetTokenColumns).
		AddRow(9, "abcdef", 1, now.Add(time.Hour), now)

	mock.ExpectQuery("SELECT id").
		WithArgs("abcdef").
		WillReturnRows(rows)

	found, err := repo.FindLatestByTokenHash(ctx, "abcdef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 9 {
		t.Errorf("expected ID=9, got %d", found.ID)
	}
	if found.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", found.UserID)
	}
}

func TestFindLatestByTokenHash_NotFound(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(resetTokenColumns))

	_, err := repo.FindLatestByTokenHash(ctx, "missing")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestFindLatestByTokenHash_QueryError(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("abcdef").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindLatestByTokenHash(ctx, "abcdef")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestDeleteToken_Success(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM password_reset_tokens").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteToken(ctx, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteToken_NotFound(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM password_reset_tokens").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteToken(ctx, 404)
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestDeleteExpired_Success(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()
	cutoff := time.Now()

	mock.ExpectExec("DELETE FROM password_reset_tokens").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected 5 deleted rows, got %d", deleted)
	}
}

func TestDeleteExpired_ExecError(t *testing.T) {
	repo, mock, db := newTestResetTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM password_reset_tokens").
		WillReturnError(errors.New("db failure"))

	_, err := repo.DeleteExpired(ctx, time.Now())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
