// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Sentinel errors returned by config validation. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidAppConfigs is returned when the global mode is not one of
	// the known values.
	ErrInvalidAppConfigs = errors.New("invalid app configs")

	// ErrInvalidSyncConfigs is returned when a configured read or write
	// routing strategy name is unknown.
	ErrInvalidSyncConfigs = errors.New("invalid sync configs")

	// ErrInvalidStorageConfigs is returned when the local mirror DSN is
	// missing.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidRemoteConfigs is returned when the remote document-store
	// base URL is missing.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configs")
)
