// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/remote"
	"github.com/MKhiriev/go-fire-mirror/internal/store"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// Manager owns the strategy and resolver registries and is the entry point
// for every sync job. It merges configured defaults into per-call options,
// resolves the strategy and conflict policy before any I/O happens, bounds
// the job with the configured timeout and retries transient failures at the
// whole-collection boundary.
//
// Manager is safe for concurrent use: registries are guarded by a mutex and
// every job runs on a fresh Strategy value built by its factory.
type Manager struct {
	remote   remote.DocumentStore
	local    store.MirrorRepository
	defaults models.SyncOptions
	logger   *logger.Logger

	mu         sync.RWMutex
	strategies map[models.StrategyName]StrategyFactory
	resolvers  map[models.ResolverName]ConflictResolver
	mapper     SchemaMapper
}

// NewManager wires a Manager with the built-in one-way strategy and both
// built-in conflict resolvers already registered. defaults come from
// configuration and fill any option the caller leaves unset.
func NewManager(remoteStore remote.DocumentStore, localStore store.MirrorRepository, defaults models.SyncOptions, log *logger.Logger) *Manager {
	m := &Manager{
		remote:     remoteStore,
		local:      localStore,
		defaults:   defaults,
		logger:     log,
		strategies: make(map[models.StrategyName]StrategyFactory),
		resolvers:  make(map[models.ResolverName]ConflictResolver),
		mapper:     NewDefaultSchemaMapper(),
	}

	m.RegisterStrategy(models.StrategyOneWay, func() Strategy {
		return NewOneWayStrategy(remoteStore, localStore, log)
	})
	m.RegisterConflictResolver(NewLastWriteWinsResolver())
	m.RegisterConflictResolver(NewVersionBasedResolver())

	return m
}

// RegisterStrategy adds or replaces the factory for the given strategy name.
func (m *Manager) RegisterStrategy(name models.StrategyName, factory StrategyFactory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strategies[name] = factory
}

// RegisterConflictResolver adds or replaces a resolver under its own name.
func (m *Manager) RegisterConflictResolver(resolver ConflictResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolvers[resolver.Name()] = resolver
}

// GetConflictResolver returns the resolver registered under name.
func (m *Manager) GetConflictResolver(name models.ResolverName) (ConflictResolver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resolver, ok := m.resolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResolverNotRegistered, name)
	}
	return resolver, nil
}

// SetSchemaMapper replaces the mapper injected into every subsequent job.
func (m *Manager) SetSchemaMapper(mapper SchemaMapper) {
	if mapper == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mapper = mapper
}

// SyncCollection runs one collection-level sync job.
//
// Configuration problems (unknown strategy or conflict policy) fail before a
// single remote call is made and yield a failed result. Transient failures
// are retried up to opts.RetryAttempts times with a fixed delay; each attempt
// runs the strategy from the start, which is safe because every mirror write
// is idempotent.
func (m *Manager) SyncCollection(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error) {
	log := m.jobLogger(ctx, collection)
	ctx = log.WithContext(ctx)

	opts = m.mergeDefaults(opts)

	strategy, err := m.buildStrategy(opts)
	if err != nil {
		result := models.NewSyncResult(collection, opts.Strategy)
		result.Finish(true)
		return result, err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Info().
		Str("func", "Manager.SyncCollection").
		Str("strategy", string(opts.Strategy)).
		Str("conflict_policy", string(opts.ConflictPolicy)).
		Int("batch_size", opts.BatchSize).
		Bool("delete_orphans", opts.DeleteOrphans).
		Msg("starting collection sync")

	var result models.SyncResult
	err = retry.Do(ctx, m.backoff(opts), func(ctx context.Context) error {
		res, syncErr := strategy.Sync(ctx, collection, opts)
		result = res
		if syncErr != nil && isTransient(syncErr) {
			return retry.RetryableError(syncErr)
		}
		return syncErr
	})

	m.logResult(log, "Manager.SyncCollection", result, err)
	return result, err
}

// SyncDocument runs a single-document sync job under the same option
// merging, fail-fast configuration checks, timeout and retry policy as
// SyncCollection.
func (m *Manager) SyncDocument(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error) {
	log := m.jobLogger(ctx, collection)
	ctx = log.WithContext(ctx)

	opts = m.mergeDefaults(opts)

	strategy, err := m.buildStrategy(opts)
	if err != nil {
		result := models.NewSyncResult(collection, opts.Strategy)
		result.Finish(true)
		return result, err
	}
	if id == "" {
		result := models.NewSyncResult(collection, opts.Strategy)
		result.Finish(true)
		return result, models.ErrEmptyRecordID
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var result models.SyncResult
	err = retry.Do(ctx, m.backoff(opts), func(ctx context.Context) error {
		res, syncErr := strategy.SyncDocument(ctx, collection, id, opts)
		result = res
		if syncErr != nil && isTransient(syncErr) {
			return retry.RetryableError(syncErr)
		}
		return syncErr
	})

	m.logResult(log, "Manager.SyncDocument", result, err)
	return result, err
}

// SyncCollections runs the collections sequentially, never aborting the
// remaining ones when an earlier one fails. The returned map holds one
// result per collection; failures are joined into the returned error.
func (m *Manager) SyncCollections(ctx context.Context, collections []string, opts models.SyncOptions) (map[string]models.SyncResult, error) {
	results := make(map[string]models.SyncResult, len(collections))

	var errs error
	for _, collection := range collections {
		result, err := m.SyncCollection(ctx, collection, opts)
		results[collection] = result
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("collection %q: %w", collection, err))
		}
	}

	return results, errs
}

// mergeDefaults overlays the manager's configured defaults onto the caller's
// options, then fills whatever is still unset with the built-in defaults.
func (m *Manager) mergeDefaults(opts models.SyncOptions) models.SyncOptions {
	if opts.Strategy == "" {
		opts.Strategy = m.defaults.Strategy
	}
	if opts.ConflictPolicy == "" {
		opts.ConflictPolicy = m.defaults.ConflictPolicy
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = m.defaults.BatchSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = m.defaults.Timeout
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = m.defaults.RetryAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = m.defaults.RetryDelay
	}
	if !opts.DeleteOrphans {
		opts.DeleteOrphans = m.defaults.DeleteOrphans
	}
	return opts.WithDefaults()
}

// buildStrategy resolves the requested strategy and conflict policy and
// returns a freshly built, fully injected strategy for this job. Both
// lookups fail before any I/O happens.
func (m *Manager) buildStrategy(opts models.SyncOptions) (Strategy, error) {
	m.mu.RLock()
	factory, strategyOK := m.strategies[opts.Strategy]
	resolver, resolverOK := m.resolvers[opts.ConflictPolicy]
	mapper := m.mapper
	m.mu.RUnlock()

	if !strategyOK {
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotRegistered, opts.Strategy)
	}
	if !resolverOK {
		return nil, fmt.Errorf("%w: %q", ErrResolverNotRegistered, opts.ConflictPolicy)
	}

	strategy := factory()
	strategy.SetConflictResolver(resolver)
	strategy.SetSchemaMapper(mapper)
	return strategy, nil
}

func (m *Manager) backoff(opts models.SyncOptions) retry.Backoff {
	return retry.WithMaxRetries(uint64(opts.RetryAttempts), retry.NewConstant(opts.RetryDelay))
}

// jobLogger derives a per-job logger carrying the collection field,
// preferring an already context-scoped logger over the manager's own.
func (m *Manager) jobLogger(ctx context.Context, collection string) *logger.Logger {
	base := logger.FromContext(ctx)
	if base.GetLevel() == zerolog.Disabled {
		base = m.logger
	}
	return &logger.Logger{Logger: base.With().Str("collection", collection).Logger()}
}

func (m *Manager) logResult(log *logger.Logger, funcName string, result models.SyncResult, err error) {
	event := log.Info()
	if err != nil {
		event = log.Err(err)
	}
	event.
		Str("func", funcName).
		Str("state", string(result.State)).
		Int("processed_count", result.Processed).
		Int("synced_count", result.Synced).
		Int("conflict_count", result.Conflicts).
		Int("error_count", result.ErrorCount).
		Float64("duration_ms", result.DurationMS).
		Msg("sync job finished")
}

// isTransient reports whether the failure is worth another attempt: remote
// transport trouble or a retryable storage failure.
func isTransient(err error) bool {
	return errors.Is(err, remote.ErrTransient) || errors.Is(err, store.ErrRetryableStorage)
}
