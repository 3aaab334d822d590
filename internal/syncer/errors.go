// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import "errors"

var (
	// ErrStrategyNotRegistered is returned by the manager when the requested
	// strategy name has no registered factory.
	ErrStrategyNotRegistered = errors.New("sync strategy is not registered")

	// ErrResolverNotRegistered is returned by the manager when the requested
	// conflict policy has no registered resolver.
	ErrResolverNotRegistered = errors.New("conflict resolver is not registered")

	// ErrUnresolvableConflict is returned by a resolver that cannot pick a
	// winner. The mirror row is left untouched and the record is reported as
	// a record-level error.
	ErrUnresolvableConflict = errors.New("conflict cannot be resolved")
)
