// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

// Package notify delivers outbound account emails over SMTP.
//
// The mailer speaks plain net/smtp with opportunistic STARTTLS and skips
// AUTH entirely when no username is configured, which keeps local catch-all
// servers (MailHog and friends) working out of the box.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// dialTimeout bounds the TCP connect to the SMTP server.
const dialTimeout = 5 * time.Second

// Mailer implements service.Notifier over SMTP.
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	templates *template.Template
	logger    *logger.Logger

	// InsecureSkipVerify disables TLS certificate verification during
	// STARTTLS. Only meant for local development servers.
	InsecureSkipVerify bool
}

// NewMailer constructs a [Mailer] from the SMTP settings in cfg. It fails
// only when the embedded email templates do not parse.
func NewMailer(cfg config.Mail, logger *logger.Logger) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing email templates failed: %w", err)
	}

	return &Mailer{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		from:      cfg.From,
		templates: templates,
		logger:    logger,
	}, nil
}

// SendVerificationCode emails the verification code to the given address.
func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	body, err := m.render("verification_code.html", map[string]string{"Code": code})
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Verify your email address", body)
}

// SendPasswordResetLink emails the password-reset link to the given address.
func (m *Mailer) SendPasswordResetLink(ctx context.Context, email, link string) error {
	body, err := m.render("password_reset.html", map[string]string{"Link": link})
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Reset your password", body)
}

func (m *Mailer) render(name string, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering email template %s failed: %w", name, err)
	}
	return buf.String(), nil
}

// buildMessage assembles the full RFC 5322 message with an HTML body.
func (m *Mailer) buildMessage(to, subject, htmlBody string) string {
	return strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")
}

// send delivers one message. STARTTLS is negotiated when the server offers
// it; AUTH runs only when a username is configured and the server offers it.
func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	log := logger.FromContext(ctx)

	msg := m.buildMessage(to, subject, htmlBody)

	dialer := &net.Dialer{Timeout: dialTimeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		log.Err(err).Str("addr", addr).Msg("smtp dial failed")
		return fmt.Errorf("smtp dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			log.Debug().Err(quitErr).Msg("smtp quit failed")
		}
	}()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.InsecureSkipVerify,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("smtp starttls failed: %w", err)
		}
	}

	if m.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.username, m.password, m.host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth failed: %w", err)
			}
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail command failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt command failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data command failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing smtp message failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing smtp message failed: %w", err)
	}

	log.Debug().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}
