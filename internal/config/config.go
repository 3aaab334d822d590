// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// StructuredConfig is the top-level configuration container for the
// go-fire-mirror application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the global operating mode and
	// the application version.
	App App `envPrefix:"APP_"`

	// Sync holds the sync-engine job defaults and routing strategies.
	Sync Sync `envPrefix:"SYNC_"`

	// Remote holds the remote document-store client settings.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the local mirror database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the admin
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for the background sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Mode is the global operating mode: "cloud" or "sync".
	// Env: APP_MODE
	Mode string `env:"MODE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Sync groups the job-level defaults of the sync engine and the read/write
// routing strategies shared with the entity layer.
type Sync struct {
	// Strategy is the default reconciliation strategy name ("one_way").
	// Env: SYNC_STRATEGY
	Strategy string `env:"STRATEGY"`

	// ConflictPolicy is the default conflict resolver name
	// ("last_write_wins" or "version_based").
	// Env: SYNC_CONFLICT_POLICY
	ConflictPolicy string `env:"CONFLICT_POLICY"`

	// ReadStrategy routes entity reads: local_only, local_first,
	// firestore_first or firestore_only.
	// Env: SYNC_READ_STRATEGY
	ReadStrategy string `env:"READ_STRATEGY"`

	// WriteStrategy routes entity writes: local_only, firestore_only or both.
	// Env: SYNC_WRITE_STRATEGY
	WriteStrategy string `env:"WRITE_STRATEGY"`

	// BatchSize is the remote listing page size used by sync jobs.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// Timeout bounds a single sync job (e.g. "300s", "5m").
	// Env: SYNC_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// RetryAttempts is the number of whole-collection retries applied for
	// transient transport failures.
	// Env: SYNC_RETRY_ATTEMPTS
	RetryAttempts int `env:"RETRY_ATTEMPTS"`

	// RetryDelay is the fixed delay between retries (e.g. "1s").
	// Env: SYNC_RETRY_DELAY
	RetryDelay time.Duration `env:"RETRY_DELAY"`

	// DeleteOrphans opts in to propagating remote deletions to the mirror.
	// Env: SYNC_DELETE_ORPHANS
	DeleteOrphans bool `env:"DELETE_ORPHANS"`

	// Collections is the list of collections synchronized by the background
	// job and the collection-list admin endpoint.
	// Env: SYNC_COLLECTIONS (comma-separated)
	Collections []string `env:"COLLECTIONS" envSeparator:","`
}

// Remote holds connection settings for the remote document store.
type Remote struct {
	// BaseURL is the root URL of the document-store REST API
	// (e.g. "https://firestore.example.com").
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey is the bearer token sent with every remote request.
	// Env: REMOTE_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout is the per-request timeout of the remote client.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of the local mirror database.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local mirror database.
type DB struct {
	// DSN is the mirror Data Source Name. A "postgres://" scheme selects the
	// pgx driver; anything else is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the admin HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the admin HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for the background sync job.
type Workers struct {
	// SyncInterval is the period of the background full sync. Zero disables
	// the background job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// SyncOptions converts the configured sync defaults into engine options.
// Unset values stay zero and are filled by [models.SyncOptions.WithDefaults]
// at the manager boundary.
func (s Sync) SyncOptions() models.SyncOptions {
	return models.SyncOptions{
		Strategy:       models.StrategyName(s.Strategy),
		ConflictPolicy: models.ResolverName(s.ConflictPolicy),
		BatchSize:      s.BatchSize,
		Timeout:        s.Timeout,
		RetryAttempts:  s.RetryAttempts,
		RetryDelay:     s.RetryDelay,
		DeleteOrphans:  s.DeleteOrphans,
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
