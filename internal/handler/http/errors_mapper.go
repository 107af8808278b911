// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"errors"
	"net/http"

	"github.com/vkrasov/veriauth/internal/service"
	"github.com/vkrasov/veriauth/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrUsernameTaken:    http.StatusConflict,
	service.ErrEmailTaken:       http.StatusConflict,
	service.ErrAlreadyVerified:  http.StatusBadRequest,
	service.ErrConcurrentUpdate: http.StatusConflict,

	service.ErrUserNotFound: http.StatusNotFound,

	service.ErrInvalidVerificationCode: http.StatusBadRequest,
	service.ErrVerificationCodeExpired: http.StatusBadRequest,
	service.ErrVerificationLocked:      http.StatusTooManyRequests,

	service.ErrResendCooldown:      http.StatusTooManyRequests,
	service.ErrResendLimitExceeded: http.StatusTooManyRequests,

	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrEmailNotVerified:        http.StatusForbidden,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrInvalidResetToken: http.StatusNotFound,
	service.ErrResetTokenExpired: http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrTokenNotFound:         http.StatusNotFound,
	store.ErrVersionConflict:       http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
