// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"context"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// Strategy is one reconciliation algorithm. A fresh Strategy value is built
// by its factory for every job, so strategies may keep per-run state without
// synchronization. The manager injects the resolver and mapper before the
// first Sync call.
type Strategy interface {
	Name() models.StrategyName

	SetConflictResolver(resolver ConflictResolver)
	SetSchemaMapper(mapper SchemaMapper)

	// Sync reconciles one whole collection and returns per-run counters.
	// Record-level failures are recovered into the result; the returned error
	// is strategy-level only (listing failure, cancelled context).
	Sync(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error)

	// SyncDocument reconciles a single document by id.
	SyncDocument(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error)
}

// StrategyFactory builds a fresh [Strategy] for one job.
type StrategyFactory func() Strategy

// ConflictResolver picks the winning field set for a conflicting record.
// The conflict's remote fields are already mapped to the local shape, so the
// returned map is written to the mirror as-is.
type ConflictResolver interface {
	Name() models.ResolverName
	Resolve(conflict models.Conflict) (models.Fields, error)
}

// SchemaMapper translates field maps between the remote document shape and
// the local row shape.
type SchemaMapper interface {
	ToLocal(remote models.Fields) (models.Fields, error)
	ToRemote(local models.Fields) (models.Fields, error)
}
