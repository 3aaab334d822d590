// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// defaultSchemaMapper flattens remote documents into the shape the mirror's
// single JSON column stores: scalar values pass through unchanged, timestamps
// become RFC 3339 strings and nested maps or arrays are encoded as JSON text.
type defaultSchemaMapper struct{}

// NewDefaultSchemaMapper returns the mapper installed by the manager when no
// custom mapper was set.
func NewDefaultSchemaMapper() SchemaMapper {
	return &defaultSchemaMapper{}
}

func (m *defaultSchemaMapper) ToLocal(remote models.Fields) (models.Fields, error) {
	if remote == nil {
		return models.Fields{}, nil
	}

	local := make(models.Fields, len(remote))
	for key, value := range remote {
		switch typed := value.(type) {
		case time.Time:
			local[key] = typed.UTC().Format(time.RFC3339Nano)
		case map[string]any, []any:
			payload, err := json.Marshal(typed)
			if err != nil {
				return nil, fmt.Errorf("encode nested field %q: %w", key, err)
			}
			local[key] = string(payload)
		default:
			local[key] = value
		}
	}

	return local, nil
}

func (m *defaultSchemaMapper) ToRemote(local models.Fields) (models.Fields, error) {
	if local == nil {
		return models.Fields{}, nil
	}
	return local.Clone(), nil
}
