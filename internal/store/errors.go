// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query targets a mirror row
	// (identified by collection and record id) that does not exist.
	ErrRecordNotFound = errors.New("mirror record was not found")

	// ErrBatchTooLarge is returned when an atomic batch operation receives
	// more operations than the implementation-defined maximum.
	ErrBatchTooLarge = errors.New("batch exceeds maximum operation count")

	// ErrRetryableStorage wraps database failures that the Postgres error
	// classifier marks as retryable (connection loss, deadlock rollback).
	// The sync manager treats it like a transient transport failure.
	ErrRetryableStorage = errors.New("retryable storage failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan mirror record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan mirror record rows")
)
