// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
)

func newTestMailer(t *testing.T) *Mailer {
	t.Helper()

	mailer, err := NewMailer(config.Mail{
		Host: "localhost",
		Port: 1025,
		From: "noreply@example.com",
	}, logger.Nop())
	require.NoError(t, err)

	return mailer
}

func TestNewMailer_ParsesTemplates(t *testing.T) {
	mailer := newTestMailer(t)

	assert.NotNil(t, mailer.templates)
}

func TestMailer_RenderVerificationCode(t *testing.T) {
	mailer := newTestMailer(t)

	body, err := mailer.render("verification_code.html", map[string]string{"Code": "424242"})

	require.NoError(t, err)
	assert.Contains(t, body, "424242")
	assert.Contains(t, body, "Verify your email address")
}

func TestMailer_RenderPasswordReset(t *testing.T) {
	mailer := newTestMailer(t)

	body, err := mailer.render("password_reset.html", map[string]string{
		"Link": "https://app.example.com/reset?token=abc",
	})

	require.NoError(t, err)
	assert.Contains(t, body, "https://app.example.com/reset?token=abc")
}

func TestMailer_RenderEscapesHTML(t *testing.T) {
	mailer := newTestMailer(t)

	body, err := mailer.render("verification_code.html", map[string]string{
		"Code": "<script>alert(1)</script>",
	})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestMailer_BuildMessage(t *testing.T) {
	mailer := newTestMailer(t)

	msg := mailer.buildMessage("alice@example.com", "Verify your email address", "<p>hi</p>")

	assert.Contains(t, msg, "From: noreply@example.com\r\n")
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Verify your email address\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}
