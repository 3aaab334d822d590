// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared across the HTTP layer.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
)

// WriteJSON serializes v into the response body with the given status code.
// Serialization failures are logged and answered with 500; headers are
// written before the body, so the status cannot be amended afterwards.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	log := logger.FromRequest(r)

	payload, err := json.Marshal(v)
	if err != nil {
		log.Err(err).
			Str("func", "WriteJSON").
			Msg("failed to serialize response body")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(payload); err != nil {
		log.Err(err).
			Str("func", "WriteJSON").
			Msg("failed to write response body")
	}
}

// UUIDGenerator produces v4 identifiers for trace ids. Wrapped in a type so
// tests can substitute a deterministic generator.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready-to-use generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh random UUID string.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
