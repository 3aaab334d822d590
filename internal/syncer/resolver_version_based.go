// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"fmt"
	"reflect"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// versionBasedResolver picks the side with the higher version counter.
// Equal versions with differing field maps indicate divergence the counter
// cannot order, so the resolver refuses with [ErrUnresolvableConflict].
type versionBasedResolver struct{}

// NewVersionBasedResolver returns the version-counter conflict resolver.
func NewVersionBasedResolver() ConflictResolver {
	return &versionBasedResolver{}
}

func (r *versionBasedResolver) Name() models.ResolverName {
	return models.ResolverVersionBased
}

func (r *versionBasedResolver) Resolve(conflict models.Conflict) (models.Fields, error) {
	switch {
	case conflict.Local.Version > conflict.Remote.Version:
		return conflict.Local.Fields.Clone(), nil
	case conflict.Local.Version < conflict.Remote.Version:
		return conflict.Remote.Fields.Clone(), nil
	}

	if reflect.DeepEqual(conflict.Local.Fields, conflict.Remote.Fields) {
		return conflict.Remote.Fields.Clone(), nil
	}

	return nil, fmt.Errorf("%w: collection %q record %q diverged at version %d",
		ErrUnresolvableConflict, conflict.Collection, conflict.Local.ID, conflict.Local.Version)
}
