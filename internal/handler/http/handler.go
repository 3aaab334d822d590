// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http exposes the administrative HTTP surface: endpoints for
// triggering sync jobs and a liveness probe for the mirror database.
package http

import (
	"context"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/utils"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// SyncService is the part of the sync manager consumed by the handlers.
type SyncService interface {
	SyncCollection(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error)
	SyncCollections(ctx context.Context, collections []string, opts models.SyncOptions) (map[string]models.SyncResult, error)
	SyncDocument(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error)
}

// Pinger is the mirror database liveness check behind GET /api/ping.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler carries the dependencies of all HTTP endpoints.
type Handler struct {
	syncer      SyncService
	db          Pinger
	collections []string
	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

// NewHandler wires the handler. collections is the configured set synced by
// POST /api/sync when the request names none.
func NewHandler(syncer SyncService, db Pinger, collections []string, log *logger.Logger) *Handler {
	return &Handler{
		syncer:      syncer,
		db:          db,
		collections: collections,
		idGenerator: utils.NewUUIDGenerator(),
		logger:      log,
	}
}
