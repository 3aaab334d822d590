// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package routing derives per-entity read/write routing decisions from the
// global operating mode, the entity's sync override and the configured
// read/write strategies. Decisions are computed on every call and never
// cached: flipping the mode or an override takes effect immediately.
package routing

import (
	"context"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/store"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// Policy answers routing questions for entities. Safe for concurrent use:
// it holds only immutable configuration and a schema checker.
type Policy struct {
	mode   models.Mode
	read   models.ReadStrategy
	write  models.WriteStrategy
	tables store.TableChecker
	logger *logger.Logger
}

// NewPolicy builds a routing policy from validated configuration. tables is
// consulted only by the local_first read strategy and may be nil when that
// strategy is never configured.
func NewPolicy(mode models.Mode, read models.ReadStrategy, write models.WriteStrategy, tables store.TableChecker, log *logger.Logger) *Policy {
	return &Policy{
		mode:   mode,
		read:   read,
		write:  write,
		tables: tables,
		logger: log,
	}
}

// SyncEnabled reports whether the mirror participates at all for an entity
// with the given override. Enabled forces it on even in cloud mode, Disabled
// forces it off even in sync mode, Inherit follows the mode.
func (p *Policy) SyncEnabled(override models.SyncOverride) bool {
	switch override {
	case models.OverrideEnabled:
		return true
	case models.OverrideDisabled:
		return false
	default:
		return p.mode == models.ModeSync
	}
}

// Decide computes the full routing decision for one entity call. table is
// the entity's mirror table name, consulted only by local_first reads.
func (p *Policy) Decide(ctx context.Context, override models.SyncOverride, table string) models.RoutingDecision {
	if !p.SyncEnabled(override) {
		// Mirror out of play: everything goes to the remote store.
		return models.RoutingDecision{WriteToFirestore: true}
	}

	return models.RoutingDecision{
		ReadFromLocal:    p.readFromLocal(ctx, table),
		WriteToLocal:     p.write == models.WriteLocalOnly || p.write == models.WriteBoth,
		WriteToFirestore: p.write == models.WriteFirestoreOnly || p.write == models.WriteBoth,
	}
}

// readFromLocal resolves the read side of the decision. local_first degrades
// to a remote read when the mirror table is missing or cannot be checked.
func (p *Policy) readFromLocal(ctx context.Context, table string) bool {
	switch p.read {
	case models.ReadLocalOnly:
		return true
	case models.ReadFirestoreOnly, models.ReadFirestoreFirst:
		return false
	case models.ReadLocalFirst:
		if p.tables == nil {
			return false
		}
		exists, err := p.tables.TableExists(ctx, table)
		if err != nil {
			logger.FromContext(ctx).Warn().
				Err(err).
				Str("func", "Policy.readFromLocal").
				Str("table", table).
				Msg("mirror table check failed, falling back to remote read")
			return false
		}
		return exists
	default:
		return false
	}
}
