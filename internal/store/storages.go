// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-fire-mirror/internal/config"
	"github.com/MKhiriev/go-fire-mirror/internal/logger"
)

// Storages aggregates the repositories of the local mirror so call sites
// receive one wired value instead of individual constructors.
type Storages struct {
	// DB is the underlying connection; exposed for migrations, the routing
	// policy's table-existence checks and graceful shutdown.
	DB *DB

	// Mirror is the mirror row repository consumed by the sync engine.
	Mirror MirrorRepository
}

// NewStorages opens the mirror database and wires the repositories.
// A "postgres://" (or "postgresql://") DSN selects the pgx driver; any other
// DSN is treated as a SQLite file path.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)
	if isPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:     db,
		Mirror: NewMirrorRepository(db, log),
	}, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
