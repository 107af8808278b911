// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as an application/json response with
// the given status code. If marshaling fails the client receives a plain 500
// and the wrapped error is returned to the caller.
//
// It returns the number of body bytes written.
//
// Example usage:
//
//	WriteJSON(w, models.MessageResponse{Message: "email verified"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(payload)
}
