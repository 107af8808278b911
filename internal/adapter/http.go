// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/internal/utils"
	"github.com/vkrasov/veriauth/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from address and
// configures the underlying HTTP client with the resolved base URL and the
// request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the registration payload to
// POST /auth/register and returns the server's confirmation message.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&msg).
		Post("/auth/register")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// VerifyEmail implements [ServerAdapter]. It POSTs the email and code to
// POST /auth/verify-email.
func (h *httpServerAdapter) VerifyEmail(ctx context.Context, req models.VerifyRequest) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&msg).
		Post("/auth/verify-email")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("verify email request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// ResendVerification implements [ServerAdapter]. It POSTs the email to
// POST /auth/resend-verification. Throttled requests surface as
// [ErrTooManyRequests].
func (h *httpServerAdapter) ResendVerification(ctx context.Context, email string) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResendVerificationRequest{Email: email}).
		SetResult(&msg).
		Post("/auth/resend-verification")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("resend verification request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// VerificationStatus implements [ServerAdapter]. It GETs
// GET /auth/verification-status with the email as a query parameter.
func (h *httpServerAdapter) VerificationStatus(ctx context.Context, email string) (models.VerificationStatusResponse, error) {
	var status models.VerificationStatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&status).
		Get("/auth/verification-status")
	if err != nil {
		return models.VerificationStatusResponse{}, fmt.Errorf("verification status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerificationStatusResponse{}, err
	}

	return status, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /auth/login. On success the bearer token is extracted from the
// Authorization response header, stored via SetToken, and returned.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return token, nil
}

// ForgotPassword implements [ServerAdapter]. It POSTs the email to
// POST /auth/forgot-password. The server's answer does not reveal whether
// the email is registered.
func (h *httpServerAdapter) ForgotPassword(ctx context.Context, email string) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ForgotPasswordRequest{Email: email}).
		SetResult(&msg).
		Post("/auth/forgot-password")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("forgot password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// ResetPassword implements [ServerAdapter]. It POSTs the raw reset token and
// new password to POST /auth/reset-password.
func (h *httpServerAdapter) ResetPassword(ctx context.Context, token, newPassword string) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResetPasswordRequest{Token: token, NewPassword: newPassword}).
		SetResult(&msg).
		Post("/auth/reset-password")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("reset password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// Me implements [ServerAdapter]. It GETs GET /auth/me. Requires a valid
// bearer token.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/auth/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	var user models.UserResponse
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.UserResponse{}, fmt.Errorf("decode me response: %w", err)
	}

	return user, nil
}

// Users implements [ServerAdapter]. It GETs GET /auth/users and decodes the
// response into a slice of [models.UserResponse]. Requires a valid bearer
// token.
func (h *httpServerAdapter) Users(ctx context.Context) ([]models.UserResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/auth/users")
	if err != nil {
		return nil, fmt.Errorf("users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.UserResponse
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}

	return users, nil
}

// ServerVersion implements [ServerAdapter]. It GETs GET /version and returns
// the plain-text version string.
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
