// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// MirrorRepository is the contract of the local relational mirror consumed by
// the sync engine and the routing policy.
type MirrorRepository interface {
	// GetRecord reads one mirror row by collection and record id, including
	// soft-deleted rows. Returns an error satisfying
	// errors.Is(err, ErrRecordNotFound) when the row is absent.
	GetRecord(ctx context.Context, collection, id string) (models.LocalRecord, error)

	// UpsertRecord inserts or fully replaces one mirror row. The write is a
	// single statement: it either lands completely or not at all.
	UpsertRecord(ctx context.Context, record models.LocalRecord) error

	// SoftDeleteRecords marks the given rows deleted and bumps their version
	// inside one transaction (the atomic batch primitive). The id list is
	// bounded by MaxBatchOps; larger lists fail with ErrBatchTooLarge.
	SoftDeleteRecords(ctx context.Context, collection string, ids []string) error

	// ListRecordIDs returns the ids of all live (non-deleted) rows of the
	// collection.
	ListRecordIDs(ctx context.Context, collection string) ([]string, error)

	// ReadModifyWrite executes fn inside one transaction: the current row (if
	// any) is read, fn decides the new row state, and the write commits only
	// if fn succeeds. fn returning write=false skips the write.
	ReadModifyWrite(ctx context.Context, collection, id string, fn ModifyFunc) error
}

// ModifyFunc is the callback of [MirrorRepository.ReadModifyWrite]. found
// reports whether the row existed; fn returns the record to write, whether
// to write it, and an error that aborts the transaction.
type ModifyFunc func(current models.LocalRecord, found bool) (models.LocalRecord, bool, error)

// TableChecker is the schema-introspection capability consumed by the
// routing policy's local_first read strategy.
type TableChecker interface {
	// TableExists reports whether the given table is present in the local
	// mirror schema.
	TableExists(ctx context.Context, table string) (bool, error)
}

// ErrorClassificator decides whether a failed database operation may succeed
// on retry. Implemented by [PostgresErrorClassifier]; SQLite deployments use
// the non-retryable default.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
