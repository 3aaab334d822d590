// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fire-mirror/models"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Mode: "sync"},
		Sync: Sync{
			ReadStrategy:  "local_first",
			WriteStrategy: "both",
		},
		Remote:  Remote{BaseURL: "https://firestore.example.com"},
		Storage: Storage{DB: DB{DSN: "mirror.db"}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().validate())
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Mode = "hybrid"

		err := cfg.validate()
		require.ErrorIs(t, err, ErrInvalidAppConfigs)
		require.ErrorIs(t, err, models.ErrUnknownMode)
	})

	t.Run("unknown strategies are rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sync.ReadStrategy = "remote_first"
		cfg.Sync.WriteStrategy = "neither"

		err := cfg.validate()
		require.ErrorIs(t, err, ErrInvalidSyncConfigs)
		require.ErrorIs(t, err, models.ErrUnknownReadStrategy)
		require.ErrorIs(t, err, models.ErrUnknownWriteStrategy)
	})

	t.Run("missing DSN is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.DB.DSN = ""

		require.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
	})

	t.Run("missing remote base URL is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Remote.BaseURL = ""

		require.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
	})
}

func TestSyncOptionsFromConfig(t *testing.T) {
	sync := Sync{
		Strategy:       "one_way",
		ConflictPolicy: "version_based",
		BatchSize:      50,
		Timeout:        2 * time.Minute,
		RetryAttempts:  5,
		RetryDelay:     500 * time.Millisecond,
		DeleteOrphans:  true,
	}

	opts := sync.SyncOptions()

	assert.Equal(t, models.StrategyOneWay, opts.Strategy)
	assert.Equal(t, models.ResolverVersionBased, opts.ConflictPolicy)
	assert.Equal(t, 50, opts.BatchSize)
	assert.Equal(t, 2*time.Minute, opts.Timeout)
	assert.Equal(t, 5, opts.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, opts.RetryDelay)
	assert.True(t, opts.DeleteOrphans)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_MODE", "sync")
	t.Setenv("SYNC_COLLECTIONS", "posts,users")
	t.Setenv("SYNC_CONFLICT_POLICY", "version_based")
	t.Setenv("REMOTE_BASE_URL", "https://firestore.example.com")
	t.Setenv("STORAGE_DB_DATABASE_URI", "mirror.db")
	t.Setenv("WORKERS_SYNC_INTERVAL", "5m")

	cfg, err := newConfigBuilder().withEnv().build()
	require.NoError(t, err)

	assert.Equal(t, "sync", cfg.App.Mode)
	assert.Equal(t, []string{"posts", "users"}, cfg.Sync.Collections)
	assert.Equal(t, "version_based", cfg.Sync.ConflictPolicy)
	assert.Equal(t, "https://firestore.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "mirror.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"app": {"mode": "sync"},
		"sync": {
			"conflict_policy": "last_write_wins",
			"batch_size": 200,
			"timeout": "5m",
			"retry_delay": "2s",
			"collections": ["posts", "users"]
		},
		"remote": {"base_url": "https://firestore.example.com", "request_timeout": "15s"},
		"storage": {"db": {"dsn": "mirror.db"}},
		"workers": {"sync_interval": "1h"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "sync", cfg.App.Mode)
	assert.Equal(t, "last_write_wins", cfg.Sync.ConflictPolicy)
	assert.Equal(t, 200, cfg.Sync.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Sync.RetryDelay)
	assert.Equal(t, []string{"posts", "users"}, cfg.Sync.Collections)
	assert.Equal(t, 15*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "mirror.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Hour, cfg.Workers.SyncInterval)
}

func TestParseJSONMissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"90s"`)))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	require.Error(t, d.UnmarshalJSON([]byte(`"ninety seconds"`)))
}
