// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"

	"github.com/MKhiriev/go-fire-mirror/models"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Mode and strategy names are validated eagerly so that a misconfigured
// deployment fails at boot instead of at the first sync call.
func (cfg *StructuredConfig) validate() error {
	var errs error

	if cfg.App.Mode != "" {
		if _, err := models.ParseMode(cfg.App.Mode); err != nil {
			errs = errors.Join(errs, err, ErrInvalidAppConfigs)
		}
	}

	if cfg.Sync.ReadStrategy != "" {
		if _, err := models.ParseReadStrategy(cfg.Sync.ReadStrategy); err != nil {
			errs = errors.Join(errs, err, ErrInvalidSyncConfigs)
		}
	}
	if cfg.Sync.WriteStrategy != "" {
		if _, err := models.ParseWriteStrategy(cfg.Sync.WriteStrategy); err != nil {
			errs = errors.Join(errs, err, ErrInvalidSyncConfigs)
		}
	}

	if cfg.Storage.DB.DSN == "" {
		errs = errors.Join(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Remote.BaseURL == "" {
		errs = errors.Join(errs, ErrInvalidRemoteConfigs)
	}

	return errs
}
