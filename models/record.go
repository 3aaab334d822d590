// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Fields is the schemaless field map carried by both remote documents and
// local mirror rows. In the local store it is persisted as a single JSON
// text column, hence the [driver.Valuer] and sql.Scanner implementations.
type Fields map[string]any

// Value implements driver.Valuer by encoding the field map as JSON text.
func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}

	payload, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner by decoding JSON text produced by Value.
func (f *Fields) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported fields column type %T", src)
	}
}

// Clone returns a shallow copy of the field map. Nested values are shared,
// which is safe because the engine never mutates nested structures in place.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}

	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// RemoteRecord is a single document read from the authoritative remote store.
// Records are always fetched fresh during a sync run and never cached.
type RemoteRecord struct {
	ID        string    `json:"id"`
	Fields    Fields    `json:"fields"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemotePage is one page of a paginated remote collection listing.
// An empty NextPageToken means the listing is exhausted.
type RemotePage struct {
	Documents     []RemoteRecord `json:"documents"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// LocalRecord is a row of the local relational mirror.
//
// LastSyncedAt marks the moment the row was last written by the sync engine;
// a nil value means the row has never been synced. UpdatedAt later than
// LastSyncedAt means the row was modified locally since the last sync.
type LocalRecord struct {
	Collection   string     `json:"collection"`
	ID           string     `json:"id"`
	Fields       Fields     `json:"fields"`
	Version      int64      `json:"version"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	Deleted      bool       `json:"deleted"`
}

// ModifiedSinceSync reports whether the row was changed locally after the
// engine last wrote it. A never-synced row counts as modified.
func (r LocalRecord) ModifiedSinceSync() bool {
	if r.LastSyncedAt == nil {
		return true
	}
	return r.UpdatedAt.After(*r.LastSyncedAt)
}

// Conflict pairs a local row with a remote document of the same id whose
// field maps disagree while the local side was independently modified since
// the last sync. Remote.Fields are already mapped to the local shape when a
// Conflict is handed to a resolver.
type Conflict struct {
	Collection string
	Local      LocalRecord
	Remote     RemoteRecord
}

// ErrEmptyRecordID is returned by store and engine operations that received
// a record with no primary key.
var ErrEmptyRecordID = errors.New("record id must not be empty")
