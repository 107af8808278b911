// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vkrasov/veriauth/internal/config"
	"github.com/vkrasov/veriauth/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(router http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:        cfg.HTTPAddress,
			Handler:     router,
			ReadTimeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil {
		fmt.Printf("HTTP server ListenAndServe: %v\n", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); h.server != nil && err != nil {
		// listener close errors
		fmt.Printf("HTTP server Shutdown: %v\n", err)
	}
}
