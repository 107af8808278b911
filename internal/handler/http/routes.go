// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/register-simple", h.registerSimple)
		r.Post("/auth/login", h.login)
		r.Post("/auth/verify-email", h.verifyEmail)
		r.Post("/auth/resend-verification", h.resendVerification)
		r.Get("/auth/verification-status", h.verificationStatus)
		r.Post("/auth/forgot-password", h.forgotPassword)
		r.Post("/auth/reset-password", h.resetPassword)
		r.Get("/version", h.getServerVersion)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/auth/me", h.me)
		r.Get("/auth/users", h.listUsers)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
