// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the periodic background full sync.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// SyncRunner is the part of the sync manager consumed by the worker.
type SyncRunner interface {
	SyncCollections(ctx context.Context, collections []string, opts models.SyncOptions) (map[string]models.SyncResult, error)
}

// SyncWorker periodically syncs the configured collections. Ticks that fire
// while a run is still in progress are skipped, so slow runs never pile up.
type SyncWorker struct {
	syncer      SyncRunner
	collections []string
	interval    time.Duration
	logger      *logger.Logger

	running  sync.Mutex
	runs     sync.WaitGroup
	stopOnce sync.Once
	started  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewSyncWorker builds the worker. A zero or negative interval disables it:
// Start becomes a no-op.
func NewSyncWorker(syncer SyncRunner, collections []string, interval time.Duration, log *logger.Logger) *SyncWorker {
	return &SyncWorker{
		syncer:      syncer,
		collections: collections,
		interval:    interval,
		logger:      log,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the ticker loop in its own goroutine. The first run happens
// after one full interval, not immediately, so startup stays fast.
func (w *SyncWorker) Start(ctx context.Context) {
	w.started = true

	if w.interval <= 0 || len(w.collections) == 0 {
		w.logger.Info().
			Str("func", "SyncWorker.Start").
			Msg("background sync disabled")
		close(w.done)
		return
	}

	w.logger.Info().
		Str("func", "SyncWorker.Start").
		Dur("interval", w.interval).
		Strs("collections", w.collections).
		Msg("background sync started")

	go w.loop(ctx)
}

// Stop signals the loop to exit and waits for an in-flight run to finish.
// Safe to call more than once, and a no-op when Start never ran.
func (w *SyncWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })

	if !w.started {
		return
	}
	<-w.done
	w.runs.Wait()
}

func (w *SyncWorker) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runs.Add(1)
			go func() {
				defer w.runs.Done()
				w.runOnce(ctx)
			}()
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// runOnce executes one full sync unless the previous one is still going.
func (w *SyncWorker) runOnce(ctx context.Context) {
	if !w.running.TryLock() {
		w.logger.Warn().
			Str("func", "SyncWorker.runOnce").
			Msg("previous sync run still in progress, skipping tick")
		return
	}
	defer w.running.Unlock()

	ctx = w.logger.WithContext(ctx)

	results, err := w.syncer.SyncCollections(ctx, w.collections, models.SyncOptions{})
	if err != nil {
		w.logger.Err(err).
			Str("func", "SyncWorker.runOnce").
			Msg("background sync finished with errors")
	}

	for collection, result := range results {
		w.logger.Info().
			Str("func", "SyncWorker.runOnce").
			Str("collection", collection).
			Str("state", string(result.State)).
			Int("synced_count", result.Synced).
			Int("conflict_count", result.Conflicts).
			Int("error_count", result.ErrorCount).
			Msg("background sync collection finished")
	}
}
