// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/remote"
	"github.com/MKhiriev/go-fire-mirror/internal/syncer"
	"github.com/MKhiriev/go-fire-mirror/internal/utils"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// syncAllRequest optionally narrows POST /api/sync to a subset of the
// configured collections and overrides job options.
type syncAllRequest struct {
	Collections []string           `json:"collections,omitempty"`
	Options     models.SyncOptions `json:"options"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Ping answers 200 when the mirror database is reachable.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "Handler.Ping").
			Msg("mirror database is unreachable")
		utils.WriteJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "mirror database is unreachable"})
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SyncCollection triggers one collection sync job. The optional JSON body is
// a models.SyncOptions document overriding the configured defaults.
func (h *Handler) SyncCollection(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := h.syncer.SyncCollection(r.Context(), collection, opts)
	h.writeSyncResponse(w, r, result, err)
}

// SyncDocument triggers a single-document sync job.
func (h *Handler) SyncDocument(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := h.syncer.SyncDocument(r.Context(), collection, id, opts)
	if errors.Is(err, remote.ErrDocumentNotFound) {
		utils.WriteJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	h.writeSyncResponse(w, r, result, err)
}

// SyncAll triggers jobs for the requested collections, defaulting to the
// configured set. Per-collection failures do not abort the remaining jobs;
// the response always carries every result.
func (h *Handler) SyncAll(w http.ResponseWriter, r *http.Request) {
	var req syncAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	collections := req.Collections
	if len(collections) == 0 {
		collections = h.collections
	}
	if len(collections) == 0 {
		utils.WriteJSON(w, r, http.StatusBadRequest, errorResponse{Error: "no collections configured"})
		return
	}

	results, err := h.syncer.SyncCollections(r.Context(), collections, req.Options)
	status := http.StatusOK
	switch {
	case isConfigurationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, remote.ErrTransient):
		status = http.StatusBadGateway
	case err != nil:
		status = http.StatusInternalServerError
	}
	utils.WriteJSON(w, r, status, results)
}

// decodeOptions reads the optional job options body. An empty body yields
// zero options, which the manager fills with configured defaults.
func (h *Handler) decodeOptions(w http.ResponseWriter, r *http.Request) (models.SyncOptions, bool) {
	var opts models.SyncOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return models.SyncOptions{}, false
	}
	return opts, true
}

// writeSyncResponse maps a job outcome to an HTTP status. A partial run is
// still a 200: the result body carries the recovered errors.
func (h *Handler) writeSyncResponse(w http.ResponseWriter, r *http.Request, result models.SyncResult, err error) {
	switch {
	case isConfigurationError(err):
		utils.WriteJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, remote.ErrTransient):
		utils.WriteJSON(w, r, http.StatusBadGateway, result)
	case err != nil:
		utils.WriteJSON(w, r, http.StatusInternalServerError, result)
	default:
		utils.WriteJSON(w, r, http.StatusOK, result)
	}
}

func isConfigurationError(err error) bool {
	return errors.Is(err, syncer.ErrStrategyNotRegistered) ||
		errors.Is(err, syncer.ErrResolverNotRegistered) ||
		errors.Is(err, models.ErrEmptyRecordID)
}
