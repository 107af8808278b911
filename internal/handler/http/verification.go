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

// verifyEmail confirms an account with its emailed code.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.VerificationService.VerifyEmail(ctx, req); err != nil {
		log.Err(err).Msg("email verification failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "email verified"}, http.StatusOK)
}

// resendVerification issues a fresh code for a pending account.
func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.VerificationService.ResendVerificationCode(ctx, req.Email); err != nil {
		log.Err(err).Msg("resending verification code failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "verification code sent"}, http.StatusOK)
}

// verificationStatus reports the verification snapshot for the email passed
// as the "email" query parameter.
func (h *Handler) verificationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter is required", http.StatusBadRequest)
		return
	}

	status, err := h.services.VerificationService.VerificationStatus(ctx, email)
	if err != nil {
		log.Err(err).Msg("verification status lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
