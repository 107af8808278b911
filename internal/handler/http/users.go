// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"net/http"

	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
)

// me returns the public projection of the authenticated account.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.VerificationService.CurrentUser(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("current user lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, toUserResponse(user), http.StatusOK)
}

// listUsers returns the public projections of every verified account.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.VerificationService.ListVerifiedUsers(ctx)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}

	utils.WriteJSON(w, responses, http.StatusOK)
}

func toUserResponse(user models.User) models.UserResponse {
	return models.UserResponse{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
	}
}
