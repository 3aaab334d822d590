// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// DocumentStore is the contract of the authoritative remote document store
// consumed by the sync engine and the entity layer.
//
// Implementations must classify retryable failures (network errors, 5xx,
// 429) with [ErrTransient] so the manager's retry policy can distinguish
// them from permanent errors.
type DocumentStore interface {
	// ListDocuments returns one page of the collection listing. pageToken is
	// the opaque cursor from the previous page; empty for the first page.
	ListDocuments(ctx context.Context, collection string, pageSize int, pageToken string) (models.RemotePage, error)

	// GetDocument reads a single document by id. Returns an error satisfying
	// errors.Is(err, ErrDocumentNotFound) when the id is absent.
	GetDocument(ctx context.Context, collection, id string) (models.RemoteRecord, error)

	// SetDocument creates or replaces a single document.
	SetDocument(ctx context.Context, collection string, doc models.RemoteRecord) error

	// DeleteDocument removes a single document by id. Deleting an absent id
	// is not an error.
	DeleteDocument(ctx context.Context, collection, id string) error
}
