// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// Config holds the connection settings of the remote document-store client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type httpDocumentStore struct {
	client *resty.Client
}

// NewClient constructs a [DocumentStore] backed by the document-store REST
// API. An empty timeout defaults to 15 seconds.
func NewClient(cfg Config) DocumentStore {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		cli.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	return &httpDocumentStore{client: cli}
}

func (h *httpDocumentStore) ListDocuments(ctx context.Context, collection string, pageSize int, pageToken string) (models.RemotePage, error) {
	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("page_size", strconv.Itoa(pageSize))
	if pageToken != "" {
		req.SetQueryParam("page_token", pageToken)
	}

	resp, err := req.Get("/v1/collections/" + collection + "/documents")
	if err != nil {
		return models.RemotePage{}, fmt.Errorf("%w: list documents request: %w", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemotePage{}, err
	}

	var page models.RemotePage
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.RemotePage{}, fmt.Errorf("decode list documents response: %w", err)
	}

	return page, nil
}

func (h *httpDocumentStore) GetDocument(ctx context.Context, collection, id string) (models.RemoteRecord, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/v1/collections/" + collection + "/documents/" + id)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: get document request: %w", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RemoteRecord{}, err
	}

	var doc models.RemoteRecord
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.RemoteRecord{}, fmt.Errorf("decode document response: %w", err)
	}

	return doc, nil
}

func (h *httpDocumentStore) SetDocument(ctx context.Context, collection string, doc models.RemoteRecord) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Put("/v1/collections/" + collection + "/documents/" + doc.ID)
	if err != nil {
		return fmt.Errorf("%w: set document request: %w", ErrTransient, err)
	}

	return mapHTTPError(resp)
}

func (h *httpDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/v1/collections/" + collection + "/documents/" + id)
	if err != nil {
		return fmt.Errorf("%w: delete document request: %w", ErrTransient, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}

	return mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return ErrUnauthorized
	}
	if code == http.StatusNotFound {
		return ErrDocumentNotFound
	}
	if code >= http.StatusInternalServerError || code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http %d: %s", ErrTransient, code, bodyText(resp))
	}

	return fmt.Errorf("http %d: %s", code, bodyText(resp))
}

func bodyText(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return body
}
