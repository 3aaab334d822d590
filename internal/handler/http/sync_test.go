// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/remote"
	"github.com/MKhiriev/go-fire-mirror/internal/syncer"
	"github.com/MKhiriev/go-fire-mirror/models"
)

type stubSyncService struct {
	collectionFn func(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error)
	documentFn   func(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error)
	allFn        func(ctx context.Context, collections []string, opts models.SyncOptions) (map[string]models.SyncResult, error)
}

func (s *stubSyncService) SyncCollection(ctx context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error) {
	return s.collectionFn(ctx, collection, opts)
}

func (s *stubSyncService) SyncDocument(ctx context.Context, collection, id string, opts models.SyncOptions) (models.SyncResult, error) {
	return s.documentFn(ctx, collection, id, opts)
}

func (s *stubSyncService) SyncCollections(ctx context.Context, collections []string, opts models.SyncOptions) (map[string]models.SyncResult, error) {
	return s.allFn(ctx, collections, opts)
}

type stubPinger struct {
	err error
}

func (p *stubPinger) PingContext(context.Context) error {
	return p.err
}

func newTestServer(t *testing.T, service SyncService, pinger Pinger, collections []string) *httptest.Server {
	t.Helper()

	handler := NewHandler(service, pinger, collections, logger.Nop())
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func completedResult(collection string) models.SyncResult {
	result := models.NewSyncResult(collection, models.StrategyOneWay)
	result.Processed = 2
	result.Synced = 2
	result.Finish(false)
	return result
}

func TestPing(t *testing.T) {
	t.Run("healthy database answers 200", func(t *testing.T) {
		server := newTestServer(t, &stubSyncService{}, &stubPinger{}, nil)

		resp, err := http.Get(server.URL + "/api/ping")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
	})

	t.Run("unreachable database answers 500", func(t *testing.T) {
		server := newTestServer(t, &stubSyncService{}, &stubPinger{err: errors.New("connection refused")}, nil)

		resp, err := http.Get(server.URL + "/api/ping")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestSyncCollectionEndpoint(t *testing.T) {
	t.Run("successful run answers 200 with the result", func(t *testing.T) {
		service := &stubSyncService{
			collectionFn: func(_ context.Context, collection string, _ models.SyncOptions) (models.SyncResult, error) {
				return completedResult(collection), nil
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.SyncResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "posts", result.Collection)
		assert.Equal(t, models.JobCompleted, result.State)
		assert.Equal(t, 2, result.Synced)
	})

	t.Run("request body overrides job options", func(t *testing.T) {
		var received models.SyncOptions
		service := &stubSyncService{
			collectionFn: func(_ context.Context, collection string, opts models.SyncOptions) (models.SyncResult, error) {
				received = opts
				return completedResult(collection), nil
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		body := strings.NewReader(`{"conflict_policy":"version_based","batch_size":10,"delete_orphans":true}`)
		resp, err := http.Post(server.URL+"/api/sync/posts", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.ResolverVersionBased, received.ConflictPolicy)
		assert.Equal(t, 10, received.BatchSize)
		assert.True(t, received.DeleteOrphans)
	})

	t.Run("unknown strategy answers 400", func(t *testing.T) {
		service := &stubSyncService{
			collectionFn: func(_ context.Context, collection string, _ models.SyncOptions) (models.SyncResult, error) {
				result := models.NewSyncResult(collection, "two_way")
				result.Finish(true)
				return result, fmt.Errorf("%w: %q", syncer.ErrStrategyNotRegistered, "two_way")
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("transient remote failure answers 502", func(t *testing.T) {
		service := &stubSyncService{
			collectionFn: func(_ context.Context, collection string, _ models.SyncOptions) (models.SyncResult, error) {
				result := models.NewSyncResult(collection, models.StrategyOneWay)
				result.Finish(true)
				return result, fmt.Errorf("list remote collection: %w", remote.ErrTransient)
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		server := newTestServer(t, &stubSyncService{}, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts", "application/json", strings.NewReader("{not json"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSyncDocumentEndpoint(t *testing.T) {
	t.Run("absent remote document answers 404", func(t *testing.T) {
		service := &stubSyncService{
			documentFn: func(_ context.Context, collection, _ string, _ models.SyncOptions) (models.SyncResult, error) {
				result := models.NewSyncResult(collection, models.StrategyOneWay)
				result.Finish(true)
				return result, fmt.Errorf("get remote document: %w", remote.ErrDocumentNotFound)
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts/missing", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("successful run answers 200", func(t *testing.T) {
		service := &stubSyncService{
			documentFn: func(_ context.Context, collection, id string, _ models.SyncOptions) (models.SyncResult, error) {
				assert.Equal(t, "post-1", id)
				return completedResult(collection), nil
			},
		}
		server := newTestServer(t, service, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync/posts/post-1", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestSyncAllEndpoint(t *testing.T) {
	t.Run("defaults to configured collections", func(t *testing.T) {
		var requested []string
		service := &stubSyncService{
			allFn: func(_ context.Context, collections []string, _ models.SyncOptions) (map[string]models.SyncResult, error) {
				requested = collections
				results := make(map[string]models.SyncResult, len(collections))
				for _, c := range collections {
					results[c] = completedResult(c)
				}
				return results, nil
			},
		}
		server := newTestServer(t, service, &stubPinger{}, []string{"posts", "users"})

		resp, err := http.Post(server.URL+"/api/sync", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"posts", "users"}, requested)

		var results map[string]models.SyncResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
		assert.Len(t, results, 2)
	})

	t.Run("no collections anywhere answers 400", func(t *testing.T) {
		server := newTestServer(t, &stubSyncService{}, &stubPinger{}, nil)

		resp, err := http.Post(server.URL+"/api/sync", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("partial failure still returns every result", func(t *testing.T) {
		service := &stubSyncService{
			allFn: func(_ context.Context, collections []string, _ models.SyncOptions) (map[string]models.SyncResult, error) {
				failed := models.NewSyncResult("broken", models.StrategyOneWay)
				failed.Finish(true)
				return map[string]models.SyncResult{
					"posts":  completedResult("posts"),
					"broken": failed,
				}, errors.New(`collection "broken": boom`)
			},
		}
		server := newTestServer(t, service, &stubPinger{}, []string{"posts", "broken"})

		resp, err := http.Post(server.URL+"/api/sync", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var results map[string]models.SyncResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
		assert.Len(t, results, 2)
		assert.Equal(t, models.JobFailed, results["broken"].State)
	})
}
