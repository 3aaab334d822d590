// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/models"
)

const mirrorTable = "mirror_records"

// MaxBatchOps bounds the atomic batch primitive. Larger inputs must be
// chunked by the caller; the limit keeps a single transaction from growing
// unbounded when orphan propagation touches a large collection.
const MaxBatchOps = 500

var mirrorColumns = []string{
	"collection",
	"record_id",
	"fields",
	"version",
	"updated_at",
	"last_synced_at",
	"deleted",
}

// mirrorRepository is the SQL-backed implementation of [MirrorRepository].
// It executes all mirror row operations against the "mirror_records" table
// using the embedded [*DB] connection and its squirrel statement builder.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (collection, record_id, batch size).
type mirrorRepository struct {
	*DB
	logger *logger.Logger
}

// NewMirrorRepository constructs a [MirrorRepository] backed by the provided
// database connection and logger.
func NewMirrorRepository(db *DB, logger *logger.Logger) MirrorRepository {
	return &mirrorRepository{
		DB:     db,
		logger: logger,
	}
}

// GetRecord retrieves one mirror row by collection and record id, including
// soft-deleted rows.
//
// Returns [ErrRecordNotFound] when no row matches.
func (r *mirrorRepository) GetRecord(ctx context.Context, collection, id string) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	if id == "" {
		return models.LocalRecord{}, models.ErrEmptyRecordID
	}

	query, args, err := r.builder.
		Select(mirrorColumns...).
		From(mirrorTable).
		Where("collection = ? AND record_id = ?", collection, id).
		ToSql()
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var record models.LocalRecord
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&record.Collection,
		&record.ID,
		&record.Fields,
		&record.Version,
		&record.UpdatedAt,
		&record.LastSyncedAt,
		&record.Deleted,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "mirrorRepository.GetRecord").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to read mirror record")
		return models.LocalRecord{}, r.wrapDBError(ErrScanningRow, scanErr)
	}

	return record, nil
}

// UpsertRecord inserts or fully replaces one mirror row as a single
// statement, so a failing write never leaves the row half-mutated.
func (r *mirrorRepository) UpsertRecord(ctx context.Context, record models.LocalRecord) error {
	log := logger.FromContext(ctx)

	if record.ID == "" {
		return models.ErrEmptyRecordID
	}

	query, args, err := r.builder.
		Insert(mirrorTable).
		Columns(mirrorColumns...).
		Values(
			record.Collection,
			record.ID,
			record.Fields,
			record.Version,
			record.UpdatedAt,
			record.LastSyncedAt,
			record.Deleted,
		).
		Suffix(`ON CONFLICT (collection, record_id) DO UPDATE SET
			fields = excluded.fields,
			version = excluded.version,
			updated_at = excluded.updated_at,
			last_synced_at = excluded.last_synced_at,
			deleted = excluded.deleted`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.UpsertRecord").
			Str("collection", record.Collection).
			Str("record_id", record.ID).
			Msg("failed to upsert mirror record")
		return r.wrapDBError(ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "mirrorRepository.UpsertRecord").
		Str("collection", record.Collection).
		Str("record_id", record.ID).
		Int64("version", record.Version).
		Msg("upserted mirror record")

	return nil
}

// SoftDeleteRecords marks the given rows deleted and bumps their version
// inside one transaction. This is the atomic batch primitive: either every
// row in the list is marked or none is.
func (r *mirrorRepository) SoftDeleteRecords(ctx context.Context, collection string, ids []string) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		log.Warn().
			Str("func", "mirrorRepository.SoftDeleteRecords").
			Str("collection", collection).
			Msg("no record ids provided")
		return nil
	}
	if len(ids) > MaxBatchOps {
		return fmt.Errorf("%w: %d ops, max %d", ErrBatchTooLarge, len(ids), MaxBatchOps)
	}

	query, args, err := r.builder.
		Update(mirrorTable).
		Set("deleted", true).
		Set("version", sq.Expr("version + 1")).
		Where("collection = ?", collection).
		Where(sq.Eq{"record_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.SoftDeleteRecords").
			Str("collection", collection).
			Int("ids_count", len(ids)).
			Msg("failed to begin transaction")
		return r.wrapDBError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.SoftDeleteRecords").
			Str("collection", collection).
			Int("ids_count", len(ids)).
			Msg("failed to execute soft delete")
		return r.wrapDBError(ErrExecutingQuery, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "mirrorRepository.SoftDeleteRecords").
			Str("collection", collection).
			Int("ids_count", len(ids)).
			Msg("failed to commit transaction")
		return r.wrapDBError(ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "mirrorRepository.SoftDeleteRecords").
		Str("collection", collection).
		Int("ids_count", len(ids)).
		Msg("soft-deleted mirror records")

	return nil
}

// ListRecordIDs returns the ids of all live rows of the collection.
func (r *mirrorRepository) ListRecordIDs(ctx context.Context, collection string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("record_id").
		From(mirrorTable).
		Where("collection = ? AND deleted = ?", collection, false).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "mirrorRepository.ListRecordIDs").
			Str("collection", collection).
			Msg("failed to execute query for listing record ids")
		return nil, r.wrapDBError(ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	ids := make([]string, 0, 50)

	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			log.Err(scanErr).
				Str("func", "mirrorRepository.ListRecordIDs").
				Str("collection", collection).
				Msg("failed to scan record id row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "mirrorRepository.ListRecordIDs").
			Str("collection", collection).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ids, nil
}

// ReadModifyWrite executes fn inside one transaction: read the current row,
// let fn decide the new state, write it, commit. Any fn error rolls the
// transaction back, so a failing record never partially mutates the mirror.
func (r *mirrorRepository) ReadModifyWrite(ctx context.Context, collection, id string, fn ModifyFunc) error {
	log := logger.FromContext(ctx)

	if id == "" {
		return models.ErrEmptyRecordID
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ReadModifyWrite").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to begin transaction")
		return r.wrapDBError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := r.builder.
		Select(mirrorColumns...).
		From(mirrorTable).
		Where("collection = ? AND record_id = ?", collection, id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var current models.LocalRecord
	found := true
	scanErr := tx.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(
		&current.Collection,
		&current.ID,
		&current.Fields,
		&current.Version,
		&current.UpdatedAt,
		&current.LastSyncedAt,
		&current.Deleted,
	)
	switch {
	case errors.Is(scanErr, sql.ErrNoRows):
		found = false
	case scanErr != nil:
		log.Err(scanErr).
			Str("func", "mirrorRepository.ReadModifyWrite").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to read mirror record in transaction")
		return r.wrapDBError(ErrScanningRow, scanErr)
	}

	next, write, fnErr := fn(current, found)
	if fnErr != nil {
		return fnErr
	}
	if !write {
		return tx.Commit()
	}

	upsertQuery, upsertArgs, err := r.builder.
		Insert(mirrorTable).
		Columns(mirrorColumns...).
		Values(
			next.Collection,
			next.ID,
			next.Fields,
			next.Version,
			next.UpdatedAt,
			next.LastSyncedAt,
			next.Deleted,
		).
		Suffix(`ON CONFLICT (collection, record_id) DO UPDATE SET
			fields = excluded.fields,
			version = excluded.version,
			updated_at = excluded.updated_at,
			last_synced_at = excluded.last_synced_at,
			deleted = excluded.deleted`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).
			Str("func", "mirrorRepository.ReadModifyWrite").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to write mirror record in transaction")
		return r.wrapDBError(ErrExecutingQuery, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "mirrorRepository.ReadModifyWrite").
			Str("collection", collection).
			Str("record_id", id).
			Msg("failed to commit transaction")
		return r.wrapDBError(ErrCommitingTransaction, commitErr)
	}

	return nil
}

// wrapDBError wraps a driver error with the given sentinel, additionally
// marking it [ErrRetryableStorage] when the active driver's classifier
// reports it retryable.
func (r *mirrorRepository) wrapDBError(sentinel, err error) error {
	if r.DB.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrRetryableStorage, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
