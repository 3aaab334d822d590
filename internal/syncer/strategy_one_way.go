// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/remote"
	"github.com/MKhiriev/go-fire-mirror/internal/store"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// oneWayStrategy propagates the remote store into the local mirror.
// Remote is authoritative: local rows are inserted, overwritten or
// soft-deleted to match it, and local changes only survive a run when the
// conflict resolver picks the local side. The mirror is never written back
// to the remote store.
type oneWayStrategy struct {
	remote   remote.DocumentStore
	local    store.MirrorRepository
	resolver ConflictResolver
	mapper   SchemaMapper
	logger   *logger.Logger
}

// NewOneWayStrategy constructs the one-way strategy. The manager's factory
// calls this per job and injects the resolver and mapper afterwards.
func NewOneWayStrategy(remoteStore remote.DocumentStore, localStore store.MirrorRepository, log *logger.Logger) Strategy {
	return &oneWayStrategy{
		remote: remoteStore,
		local:  localStore,
		mapper: NewDefaultSchemaMapper(),
		logger: log,
	}
}

func (s *oneWayStrategy) Name() models.StrategyName {
	return models.StrategyOneWay
}

func (s *oneWayStrategy) SetConflictResolver(resolver ConflictResolver) {
	s.resolver = resolver
}

func (s *oneWayStrategy) SetSchemaMapper(mapper SchemaMapper) {
	if mapper != nil {
		s.mapper = mapper
	}
}

// Sync pages through the remote collection listing and reconciles every
// returned document into the mirror. Record-level failures are recovered
// into the result; a listing failure or a cancelled context aborts the run
// with a strategy-level error.
func (s *oneWayStrategy) Sync(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	opts = opts.WithDefaults()
	result := models.NewSyncResult(collection, s.Name())

	// Ids seen in the listing, collected only when orphan propagation is on.
	var seen map[string]struct{}
	if opts.DeleteOrphans {
		seen = make(map[string]struct{})
	}

	pageToken := ""
	for {
		page, err := s.remote.ListDocuments(ctx, collection, opts.BatchSize, pageToken)
		if err != nil {
			log.Err(err).
				Str("func", "oneWayStrategy.Sync").
				Str("collection", collection).
				Msg("remote listing failed")
			result.Finish(true)
			return result, fmt.Errorf("list remote collection %q: %w", collection, err)
		}

		for i := range page.Documents {
			if seen != nil {
				seen[page.Documents[i].ID] = struct{}{}
			}
			s.processRecord(ctx, collection, page.Documents[i], &result)
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken

		if err := ctx.Err(); err != nil {
			result.Finish(true)
			return result, err
		}
	}

	// Orphans are only propagated after the listing completed: a partial
	// remote read must never be mistaken for a remote deletion.
	if opts.DeleteOrphans {
		s.deleteOrphans(ctx, collection, seen, &result)
	}

	result.Finish(false)
	return result, nil
}

// SyncDocument reconciles a single document by id inside one mirror
// transaction. A remote read failure, including an absent document, is a
// strategy-level error.
func (s *oneWayStrategy) SyncDocument(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	result := models.NewSyncResult(collection, s.Name())

	doc, err := s.remote.GetDocument(ctx, collection, id)
	if err != nil {
		result.Finish(true)
		return result, fmt.Errorf("get remote document %q/%q: %w", collection, id, err)
	}

	result.Processed++

	mapped, err := s.mapper.ToLocal(doc.Fields)
	if err != nil {
		result.AddError(id, fmt.Errorf("map remote fields: %w", err))
		result.Finish(false)
		return result, nil
	}
	doc.Fields = mapped

	var synced, conflict bool
	rmwErr := s.local.ReadModifyWrite(ctx, collection, id, func(current models.LocalRecord, found bool) (models.LocalRecord, bool, error) {
		now := time.Now()

		if !found {
			synced = true
			return newMirrorRecord(collection, doc, now), true, nil
		}
		if !current.Deleted && fieldsEqual(current.Fields, doc.Fields) {
			return models.LocalRecord{}, false, nil
		}

		winning := doc.Fields
		if current.ModifiedSinceSync() && !fieldsEqual(current.Fields, doc.Fields) {
			resolved, resolveErr := s.resolver.Resolve(models.Conflict{
				Collection: collection,
				Local:      current,
				Remote:     doc,
			})
			if resolveErr != nil {
				return models.LocalRecord{}, false, resolveErr
			}
			conflict = true
			winning = resolved
		} else {
			synced = true
		}

		return mergedMirrorRecord(current, doc, winning, now), true, nil
	})
	if rmwErr != nil {
		// Transient storage trouble fails the whole run so the manager's
		// retry policy gets a chance; everything else is a record error.
		if isTransient(rmwErr) {
			result.Finish(true)
			return result, fmt.Errorf("reconcile document %q/%q: %w", collection, id, rmwErr)
		}
		result.AddError(id, rmwErr)
		log.Err(rmwErr).
			Str("func", "oneWayStrategy.SyncDocument").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to reconcile document")
	} else {
		if synced {
			result.Synced++
		}
		if conflict {
			result.Conflicts++
		}
	}

	result.Finish(false)
	return result, nil
}

// processRecord reconciles one listed document into the mirror. All failures
// are recovered onto the result so the rest of the batch keeps going.
func (s *oneWayStrategy) processRecord(ctx context.Context, collection string, doc models.RemoteRecord, result *models.SyncResult) {
	log := logger.FromContext(ctx)

	result.Processed++

	if doc.ID == "" {
		result.AddError("", models.ErrEmptyRecordID)
		return
	}

	mapped, err := s.mapper.ToLocal(doc.Fields)
	if err != nil {
		result.AddError(doc.ID, fmt.Errorf("map remote fields: %w", err))
		return
	}
	doc.Fields = mapped

	now := time.Now()

	local, err := s.local.GetRecord(ctx, collection, doc.ID)
	if errors.Is(err, store.ErrRecordNotFound) {
		if insertErr := s.local.UpsertRecord(ctx, newMirrorRecord(collection, doc, now)); insertErr != nil {
			result.AddError(doc.ID, fmt.Errorf("insert mirror record: %w", insertErr))
			return
		}
		result.Synced++
		return
	}
	if err != nil {
		result.AddError(doc.ID, fmt.Errorf("read mirror record: %w", err))
		return
	}

	// Already converged: nothing to write, nothing to count.
	if !local.Deleted && fieldsEqual(local.Fields, doc.Fields) {
		return
	}

	winning := doc.Fields
	conflict := false
	if local.ModifiedSinceSync() && !fieldsEqual(local.Fields, doc.Fields) {
		resolved, resolveErr := s.resolver.Resolve(models.Conflict{
			Collection: collection,
			Local:      local,
			Remote:     doc,
		})
		if resolveErr != nil {
			result.AddError(doc.ID, resolveErr)
			log.Warn().
				Str("func", "oneWayStrategy.processRecord").
				Str("collection", collection).
				Str("record_id", doc.ID).
				Str("resolver", string(s.resolver.Name())).
				Msg("conflict left unresolved, mirror row untouched")
			return
		}
		conflict = true
		winning = resolved
	}

	if writeErr := s.local.UpsertRecord(ctx, mergedMirrorRecord(local, doc, winning, now)); writeErr != nil {
		result.AddError(doc.ID, fmt.Errorf("write mirror record: %w", writeErr))
		return
	}

	if conflict {
		result.Conflicts++
	} else {
		result.Synced++
	}
}

// deleteOrphans soft-deletes live mirror rows whose id did not appear in the
// completed remote listing, in chunks bounded by the store's batch limit.
func (s *oneWayStrategy) deleteOrphans(ctx context.Context, collection string, seen map[string]struct{}, result *models.SyncResult) {
	log := logger.FromContext(ctx)

	ids, err := s.local.ListRecordIDs(ctx, collection)
	if err != nil {
		result.AddError("", fmt.Errorf("list mirror record ids: %w", err))
		return
	}

	orphans := make([]string, 0)
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) == 0 {
		return
	}

	log.Info().
		Str("func", "oneWayStrategy.deleteOrphans").
		Str("collection", collection).
		Int("orphans_count", len(orphans)).
		Msg("soft-deleting mirror rows absent from remote listing")

	for start := 0; start < len(orphans); start += store.MaxBatchOps {
		end := min(start+store.MaxBatchOps, len(orphans))
		chunk := orphans[start:end]

		if deleteErr := s.local.SoftDeleteRecords(ctx, collection, chunk); deleteErr != nil {
			for _, id := range chunk {
				result.AddError(id, fmt.Errorf("soft-delete orphan: %w", deleteErr))
			}
			continue
		}
		result.Synced += len(chunk)
	}
}

// newMirrorRecord builds the mirror row for a document never seen locally.
func newMirrorRecord(collection string, doc models.RemoteRecord, now time.Time) models.LocalRecord {
	return models.LocalRecord{
		Collection:   collection,
		ID:           doc.ID,
		Fields:       doc.Fields,
		Version:      doc.Version,
		UpdatedAt:    now,
		LastSyncedAt: &now,
	}
}

// mergedMirrorRecord builds the next state of an existing row after
// reconciliation. The version only moves forward, whichever side won.
func mergedMirrorRecord(current models.LocalRecord, doc models.RemoteRecord, winning models.Fields, now time.Time) models.LocalRecord {
	next := current
	next.Fields = winning
	next.Version = max(current.Version, doc.Version)
	next.UpdatedAt = now
	next.LastSyncedAt = &now
	next.Deleted = false
	return next
}

func fieldsEqual(a, b models.Fields) bool {
	// A nil map and an empty map are the same absent payload.
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
