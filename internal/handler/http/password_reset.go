// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"encoding/json"
	"net/http"

	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
)

// forgotPassword issues a password-reset token and emails the reset link.
// The response is identical whether or not the email is registered.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.ForgotPassword(ctx, req.Email); err != nil {
		log.Err(err).Msg("forgot password failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "if the email is registered, a reset link was sent"}, http.StatusOK)
}

// resetPassword consumes a reset token and replaces the account password.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		log.Err(err).Msg("password reset failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password updated"}, http.StatusOK)
}
