// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// StrategyName identifies a registered sync strategy. The set of valid names
// is closed at startup; new strategies register a new constant.
type StrategyName string

// ResolverName identifies a registered conflict resolver.
type ResolverName string

const (
	StrategyOneWay StrategyName = "one_way"

	ResolverLastWriteWins ResolverName = "last_write_wins"
	ResolverVersionBased  ResolverName = "version_based"
)

// JobState is the lifecycle state of a single sync invocation.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobPartial   JobState = "partial"
	JobFailed    JobState = "failed"
)

// Default job configuration applied when the caller leaves an option unset.
const (
	DefaultBatchSize     = 100
	DefaultTimeout       = 300 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
)

// SyncOptions configures one sync invocation. The zero value is usable:
// WithDefaults fills every unset field with the documented default.
type SyncOptions struct {
	// Strategy names the reconciliation algorithm. Default "one_way".
	Strategy StrategyName `json:"strategy,omitempty"`

	// ConflictPolicy names the conflict resolver. Default "last_write_wins".
	ConflictPolicy ResolverName `json:"conflict_policy,omitempty"`

	// BatchSize is the remote listing page size. Default 100.
	BatchSize int `json:"batch_size,omitempty"`

	// Timeout bounds the whole job via the job context. Default 300s.
	Timeout time.Duration `json:"timeout,omitempty"`

	// RetryAttempts is the number of retries applied at the whole-collection
	// call boundary for transient transport failures. Default 3.
	RetryAttempts int `json:"retry_attempts,omitempty"`

	// RetryDelay is the fixed delay between those retries. Default 1s.
	RetryDelay time.Duration `json:"retry_delay,omitempty"`

	// DeleteOrphans opts in to soft-deleting local rows whose id is absent
	// from the complete remote listing. Off by default: a partial remote read
	// must never be mistaken for a remote deletion.
	DeleteOrphans bool `json:"delete_orphans,omitempty"`
}

// WithDefaults returns a copy of o with every unset field replaced by the
// corresponding default value.
func (o SyncOptions) WithDefaults() SyncOptions {
	if o.Strategy == "" {
		o.Strategy = StrategyOneWay
	}
	if o.ConflictPolicy == "" {
		o.ConflictPolicy = ResolverLastWriteWins
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = DefaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

// SyncError is one recovered record-level failure. Record errors never abort
// the batch; they accumulate on the result in processing order.
type SyncError struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
}

// SyncResult is the outcome of one sync invocation. It is mutated only by
// the strategy that owns the run and is immutable once returned.
type SyncResult struct {
	Collection string       `json:"collection"`
	Strategy   StrategyName `json:"strategy"`
	State      JobState     `json:"state"`

	Processed  int         `json:"processed_count"`
	Synced     int         `json:"synced_count"`
	Conflicts  int         `json:"conflict_count"`
	ErrorCount int         `json:"error_count"`
	Errors     []SyncError `json:"errors,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS float64   `json:"duration_ms"`
}

// NewSyncResult creates a running result for the given collection and
// strategy and stamps the start time.
func NewSyncResult(collection string, strategy StrategyName) SyncResult {
	return SyncResult{
		Collection: collection,
		Strategy:   strategy,
		State:      JobRunning,
		StartedAt:  time.Now(),
	}
}

// AddError records one recovered record-level failure.
func (r *SyncResult) AddError(recordID string, err error) {
	r.Errors = append(r.Errors, SyncError{RecordID: recordID, Message: err.Error()})
	r.ErrorCount = len(r.Errors)
}

// Finish stamps the end time and derives the terminal state.
//
//   - failed: a strategy-level error occurred before any record was processed;
//   - partial: record-level errors were recovered, or a strategy-level error
//     interrupted a run that had already processed records;
//   - completed: every processed record succeeded.
func (r *SyncResult) Finish(strategyErr bool) {
	r.FinishedAt = time.Now()
	r.DurationMS = float64(r.FinishedAt.Sub(r.StartedAt)) / float64(time.Millisecond)

	switch {
	case strategyErr && r.Processed == 0:
		r.State = JobFailed
	case strategyErr || r.ErrorCount > 0:
		r.State = JobPartial
	default:
		r.State = JobCompleted
	}
}
