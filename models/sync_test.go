// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncOptionsWithDefaults(t *testing.T) {
	t.Run("zero value gets every default", func(t *testing.T) {
		opts := SyncOptions{}.WithDefaults()

		assert.Equal(t, StrategyOneWay, opts.Strategy)
		assert.Equal(t, ResolverLastWriteWins, opts.ConflictPolicy)
		assert.Equal(t, DefaultBatchSize, opts.BatchSize)
		assert.Equal(t, DefaultTimeout, opts.Timeout)
		assert.Equal(t, DefaultRetryAttempts, opts.RetryAttempts)
		assert.Equal(t, DefaultRetryDelay, opts.RetryDelay)
		assert.False(t, opts.DeleteOrphans)
	})

	t.Run("set fields are preserved", func(t *testing.T) {
		opts := SyncOptions{
			ConflictPolicy: ResolverVersionBased,
			BatchSize:      7,
			DeleteOrphans:  true,
		}.WithDefaults()

		assert.Equal(t, ResolverVersionBased, opts.ConflictPolicy)
		assert.Equal(t, 7, opts.BatchSize)
		assert.True(t, opts.DeleteOrphans)
		assert.Equal(t, StrategyOneWay, opts.Strategy)
	})
}

func TestSyncResultFinish(t *testing.T) {
	t.Run("clean run completes", func(t *testing.T) {
		result := NewSyncResult("posts", StrategyOneWay)
		result.Processed = 3
		result.Synced = 3

		result.Finish(false)

		assert.Equal(t, JobCompleted, result.State)
		assert.False(t, result.FinishedAt.IsZero())
		assert.GreaterOrEqual(t, result.DurationMS, float64(0))
	})

	t.Run("record errors make it partial", func(t *testing.T) {
		result := NewSyncResult("posts", StrategyOneWay)
		result.Processed = 3
		result.Synced = 2
		result.AddError("post-3", errors.New("disk I/O error"))

		result.Finish(false)

		assert.Equal(t, JobPartial, result.State)
		assert.Equal(t, 1, result.ErrorCount)
	})

	t.Run("strategy error before any record fails", func(t *testing.T) {
		result := NewSyncResult("posts", StrategyOneWay)

		result.Finish(true)

		assert.Equal(t, JobFailed, result.State)
	})

	t.Run("strategy error mid-run is partial", func(t *testing.T) {
		result := NewSyncResult("posts", StrategyOneWay)
		result.Processed = 5
		result.Synced = 5

		result.Finish(true)

		assert.Equal(t, JobPartial, result.State)
	})
}

func TestLocalRecordModifiedSinceSync(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	t.Run("never synced counts as modified", func(t *testing.T) {
		record := LocalRecord{UpdatedAt: now}
		assert.True(t, record.ModifiedSinceSync())
	})

	t.Run("updated after sync is modified", func(t *testing.T) {
		record := LocalRecord{UpdatedAt: now, LastSyncedAt: &earlier}
		assert.True(t, record.ModifiedSinceSync())
	})

	t.Run("untouched since sync is not modified", func(t *testing.T) {
		record := LocalRecord{UpdatedAt: earlier, LastSyncedAt: &now}
		assert.False(t, record.ModifiedSinceSync())
	})

	t.Run("synced at the same instant is not modified", func(t *testing.T) {
		record := LocalRecord{UpdatedAt: now, LastSyncedAt: &now}
		assert.False(t, record.ModifiedSinceSync())
	})
}

func TestFieldsValueScanRoundTrip(t *testing.T) {
	fields := Fields{
		"title":  "hello",
		"views":  float64(42),
		"nested": "encoded elsewhere",
	}

	value, err := fields.Value()
	require.NoError(t, err)

	var scanned Fields
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, fields, scanned)

	t.Run("nil map persists as empty object", func(t *testing.T) {
		var empty Fields
		value, err := empty.Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", value)
	})

	t.Run("unsupported column type is rejected", func(t *testing.T) {
		var f Fields
		require.Error(t, f.Scan(42))
	})
}
