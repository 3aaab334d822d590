// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"github.com/MKhiriev/go-fire-mirror/models"
)

// lastWriteWinsResolver picks the side with the later updated_at timestamp.
// An exact tie goes to the remote side: the remote store is authoritative.
type lastWriteWinsResolver struct{}

// NewLastWriteWinsResolver returns the default conflict resolver.
func NewLastWriteWinsResolver() ConflictResolver {
	return &lastWriteWinsResolver{}
}

func (r *lastWriteWinsResolver) Name() models.ResolverName {
	return models.ResolverLastWriteWins
}

func (r *lastWriteWinsResolver) Resolve(conflict models.Conflict) (models.Fields, error) {
	if conflict.Local.UpdatedAt.After(conflict.Remote.UpdatedAt) {
		return conflict.Local.Fields.Clone(), nil
	}
	return conflict.Remote.Fields.Clone(), nil
}
