// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fire-mirror/models"
)

func conflictAt(localUpdated, remoteUpdated time.Time, localVersion, remoteVersion int64) models.Conflict {
	return models.Conflict{
		Collection: "posts",
		Local: models.LocalRecord{
			Collection: "posts",
			ID:         "post-1",
			Fields:     models.Fields{"title": "local title"},
			Version:    localVersion,
			UpdatedAt:  localUpdated,
		},
		Remote: models.RemoteRecord{
			ID:        "post-1",
			Fields:    models.Fields{"title": "remote title"},
			Version:   remoteVersion,
			UpdatedAt: remoteUpdated,
		},
	}
}

func TestLastWriteWinsResolver(t *testing.T) {
	resolver := NewLastWriteWinsResolver()
	require.Equal(t, models.ResolverLastWriteWins, resolver.Name())

	now := time.Now()

	t.Run("local newer wins", func(t *testing.T) {
		fields, err := resolver.Resolve(conflictAt(now, now.Add(-time.Minute), 1, 1))
		require.NoError(t, err)
		assert.Equal(t, "local title", fields["title"])
	})

	t.Run("remote newer wins", func(t *testing.T) {
		fields, err := resolver.Resolve(conflictAt(now.Add(-time.Minute), now, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, "remote title", fields["title"])
	})

	t.Run("exact tie goes to remote", func(t *testing.T) {
		fields, err := resolver.Resolve(conflictAt(now, now, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, "remote title", fields["title"])
	})
}

func TestVersionBasedResolver(t *testing.T) {
	resolver := NewVersionBasedResolver()
	require.Equal(t, models.ResolverVersionBased, resolver.Name())

	now := time.Now()

	t.Run("higher local version wins", func(t *testing.T) {
		fields, err := resolver.Resolve(conflictAt(now, now, 5, 3))
		require.NoError(t, err)
		assert.Equal(t, "local title", fields["title"])
	})

	t.Run("higher remote version wins", func(t *testing.T) {
		fields, err := resolver.Resolve(conflictAt(now, now, 3, 5))
		require.NoError(t, err)
		assert.Equal(t, "remote title", fields["title"])
	})

	t.Run("equal versions with differing fields is unresolvable", func(t *testing.T) {
		_, err := resolver.Resolve(conflictAt(now, now, 4, 4))
		require.ErrorIs(t, err, ErrUnresolvableConflict)
	})

	t.Run("equal versions with equal fields converge to remote", func(t *testing.T) {
		conflict := conflictAt(now, now, 4, 4)
		conflict.Local.Fields = models.Fields{"title": "same"}
		conflict.Remote.Fields = models.Fields{"title": "same"}

		fields, err := resolver.Resolve(conflict)
		require.NoError(t, err)
		assert.Equal(t, "same", fields["title"])
	})
}
