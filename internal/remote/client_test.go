// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fire-mirror/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) DocumentStore {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestListDocuments(t *testing.T) {
	t.Run("decodes a page and forwards pagination params", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/collections/posts/documents", r.URL.Path)
			assert.Equal(t, "50", r.URL.Query().Get("page_size"))
			assert.Equal(t, "cursor-1", r.URL.Query().Get("page_token"))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			page := models.RemotePage{
				Documents: []models.RemoteRecord{
					{ID: "post-1", Fields: models.Fields{"title": "one"}, Version: 3},
				},
				NextPageToken: "cursor-2",
			}
			require.NoError(t, json.NewEncoder(w).Encode(page))
		})

		page, err := client.ListDocuments(context.Background(), "posts", 50, "cursor-1")
		require.NoError(t, err)

		require.Len(t, page.Documents, 1)
		assert.Equal(t, "post-1", page.Documents[0].ID)
		assert.Equal(t, int64(3), page.Documents[0].Version)
		assert.Equal(t, "cursor-2", page.NextPageToken)
	})

	t.Run("server errors are transient", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})

		_, err := client.ListDocuments(context.Background(), "posts", 50, "")
		require.ErrorIs(t, err, ErrTransient)
	})

	t.Run("rate limiting is transient", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.ListDocuments(context.Background(), "posts", 50, "")
		require.ErrorIs(t, err, ErrTransient)
	})

	t.Run("unreachable server is transient", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})

		_, err := client.ListDocuments(context.Background(), "posts", 50, "")
		require.ErrorIs(t, err, ErrTransient)
	})
}

func TestGetDocument(t *testing.T) {
	t.Run("decodes a document", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/collections/posts/documents/post-1", r.URL.Path)
			require.NoError(t, json.NewEncoder(w).Encode(models.RemoteRecord{
				ID:      "post-1",
				Fields:  models.Fields{"title": "one"},
				Version: 3,
			}))
		})

		doc, err := client.GetDocument(context.Background(), "posts", "post-1")
		require.NoError(t, err)
		assert.Equal(t, "post-1", doc.ID)
		assert.Equal(t, "one", doc.Fields["title"])
	})

	t.Run("absent document", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetDocument(context.Background(), "posts", "missing")
		require.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.GetDocument(context.Background(), "posts", "post-1")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestSetDocument(t *testing.T) {
	var received models.RemoteRecord
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/collections/posts/documents/post-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})

	err := client.SetDocument(context.Background(), "posts", models.RemoteRecord{
		ID:     "post-1",
		Fields: models.Fields{"title": "one"},
	})
	require.NoError(t, err)
	assert.Equal(t, "post-1", received.ID)
}

func TestDeleteDocument(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v1/collections/posts/documents/post-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.DeleteDocument(context.Background(), "posts", "post-1"))
	})

	t.Run("absent id is not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		require.NoError(t, client.DeleteDocument(context.Background(), "posts", "already-gone"))
	})
}
