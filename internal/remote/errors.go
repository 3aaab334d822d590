// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import "errors"

// Sentinel errors returned by the remote document-store client. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrTransient marks network failures and 5xx/429 responses. The sync
	// manager retries calls whose error chain contains ErrTransient; every
	// other error is surfaced immediately.
	ErrTransient = errors.New("transient remote store failure")

	// ErrDocumentNotFound is returned when a single-document read targets an
	// id that does not exist in the remote collection.
	ErrDocumentNotFound = errors.New("remote document not found")

	// ErrUnauthorized is returned when the remote store rejects the
	// configured API key.
	ErrUnauthorized = errors.New("remote store unauthorized")
)
