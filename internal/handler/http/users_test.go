// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkrasov/veriauth/internal/service"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
)

// executeAuthenticated runs a handler with the given username already placed
// in the request context, as the auth middleware would have done.
func executeAuthenticated(t *testing.T, handlerFn http.HandlerFunc, method, target, username string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req = injectNopLogger(req)
	req = req.WithContext(context.WithValue(req.Context(), utils.UsernameCtxKey, username))
	rr := httptest.NewRecorder()
	handlerFn(rr, req)
	return rr
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	verification := &mockVerificationService{
		currentUserFn: func(_ context.Context, username string) (models.User, error) {
			assert.Equal(t, "alice", username)
			return models.User{UserID: 1, Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	h := newTestFullHandler(verification, nil, nil)

	rr := executeAuthenticated(t, h.me, http.MethodGet, "/auth/me", "alice")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestMe_NoUsernameInContext(t *testing.T) {
	h := newTestFullHandler(nil, nil, nil)

	rr := executeJSON(t, h.me, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe_UserNotFound(t *testing.T) {
	verification := &mockVerificationService{
		currentUserFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, service.ErrUserNotFound
		},
	}
	h := newTestFullHandler(verification, nil, nil)

	rr := executeAuthenticated(t, h.me, http.MethodGet, "/auth/me", "ghost")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ─────────────────────────────────────────────
// listUsers
// ─────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	verification := &mockVerificationService{
		listVerifiedUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{
				{UserID: 1, Username: "alice", Email: "alice@example.com"},
				{UserID: 2, Username: "bob", Email: "bob@example.com"},
			}, nil
		},
	}
	h := newTestFullHandler(verification, nil, nil)

	rr := executeAuthenticated(t, h.listUsers, http.MethodGet, "/auth/users", "alice")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []models.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "alice", resp[0].Username)
	assert.Equal(t, "bob", resp[1].Username)
}

func TestListUsers_Empty(t *testing.T) {
	h := newTestFullHandler(nil, nil, nil)

	rr := executeAuthenticated(t, h.listUsers, http.MethodGet, "/auth/users", "alice")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListUsers_StoreFailure(t *testing.T) {
	verification := &mockVerificationService{
		listVerifiedUsersFn: func(_ context.Context) ([]models.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	h := newTestFullHandler(verification, nil, nil)

	rr := executeAuthenticated(t, h.listUsers, http.MethodGet, "/auth/users", "alice")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
