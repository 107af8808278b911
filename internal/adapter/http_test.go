// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/models"
)

// newTestAdapter builds an httpServerAdapter pointed at a test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── NewHTTPServerAdapter ────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter("", 5*time.Second, logger.Nop())

	require.Error(t, err)
}

func TestNewHTTPServerAdapter_SchemelessAddress(t *testing.T) {
	a, err := NewHTTPServerAdapter("localhost:8080", 5*time.Second, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, a)
}

// ── Register ────────────────────────────────────────────────────────────────

func TestAdapterRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "verification code sent"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	msg, err := a.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "verification code sent", msg.Message)
}

func TestAdapterRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("email already registered"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── VerifyEmail ─────────────────────────────────────────────────────────────

func TestAdapterVerifyEmail_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify-email", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "email verified"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	msg, err := a.VerifyEmail(context.Background(), models.VerifyRequest{
		Email:            "alice@example.com",
		VerificationCode: "424242",
	})

	require.NoError(t, err)
	assert.Equal(t, "email verified", msg.Message)
}

func TestAdapterVerifyEmail_WrongCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid verification code"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.VerifyEmail(context.Background(), models.VerifyRequest{
		Email:            "alice@example.com",
		VerificationCode: "000000",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── ResendVerification ──────────────────────────────────────────────────────

func TestAdapterResendVerification_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("resend cooldown has not elapsed"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ResendVerification(context.Background(), "alice@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

// ── VerificationStatus ──────────────────────────────────────────────────────

func TestAdapterVerificationStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verification-status", r.URL.Path)
		assert.Equal(t, "alice@example.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.VerificationStatusResponse{
			Status: models.StatusPending,
			Email:  "alice@example.com",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	status, err := a.VerificationStatus(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status.Status)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestAdapterLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		w.Header().Set("Authorization", "Bearer test-token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.JWTResponse{Token: "test-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, "test-token", a.Token())
}

func TestAdapterLogin_EmailNotVerified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("email not verified"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, a.Token())
}

func TestAdapterLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid username/password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── ForgotPassword / ResetPassword ──────────────────────────────────────────

func TestAdapterForgotPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/forgot-password", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "if the email is registered, a reset link was sent"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	msg, err := a.ForgotPassword(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Contains(t, msg.Message, "if the email is registered")
}

func TestAdapterResetPassword_UnknownToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("invalid or unknown reset token"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ResetPassword(context.Background(), "bogus", "new-secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Me / Users ──────────────────────────────────────────────────────────────

func TestAdapterMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.UserResponse{ID: 1, Username: "alice", Email: "alice@example.com"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("test-token")
	user, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAdapterMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Me(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdapterUsers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/users", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.UserResponse{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("test-token")
	users, err := a.Users(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)
}

// ── ServerVersion ───────────────────────────────────────────────────────────

func TestAdapterServerVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		_, _ = w.Write([]byte("1.2.3"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	version, err := a.ServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}
