// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/migrations"
)

// DB wraps the sql.DB connection together with the driver-specific pieces
// the repository needs: the squirrel statement builder configured with the
// right placeholder format and the error classifier of the active driver.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending goose migrations for the mirror schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// TableExists implements [TableChecker] for the active driver.
func (db *DB) TableExists(ctx context.Context, table string) (bool, error) {
	var query string
	switch db.dialect {
	case dialectPostgres:
		query = `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1);`
	default:
		query = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?);`
	}

	var exists bool
	if err := db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}
