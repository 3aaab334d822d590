// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly types:
// durations are decoded from strings like "30s" via the [Duration] wrapper.
type StructuredJSONConfig struct {
	App struct {
		Mode    string `json:"mode"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Sync struct {
		Strategy       string   `json:"strategy"`
		ConflictPolicy string   `json:"conflict_policy"`
		ReadStrategy   string   `json:"read_strategy"`
		WriteStrategy  string   `json:"write_strategy"`
		BatchSize      int      `json:"batch_size"`
		Timeout        Duration `json:"timeout"`
		RetryAttempts  int      `json:"retry_attempts"`
		RetryDelay     Duration `json:"retry_delay"`
		DeleteOrphans  bool     `json:"delete_orphans"`
		Collections    []string `json:"collections"`
	} `json:"sync,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Mode:    jsonCfg.App.Mode,
			Version: jsonCfg.App.Version,
		},
		Sync: Sync{
			Strategy:       jsonCfg.Sync.Strategy,
			ConflictPolicy: jsonCfg.Sync.ConflictPolicy,
			ReadStrategy:   jsonCfg.Sync.ReadStrategy,
			WriteStrategy:  jsonCfg.Sync.WriteStrategy,
			BatchSize:      jsonCfg.Sync.BatchSize,
			Timeout:        time.Duration(jsonCfg.Sync.Timeout),
			RetryAttempts:  jsonCfg.Sync.RetryAttempts,
			RetryDelay:     time.Duration(jsonCfg.Sync.RetryDelay),
			DeleteOrphans:  jsonCfg.Sync.DeleteOrphans,
			Collections:    jsonCfg.Sync.Collections,
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			APIKey:         jsonCfg.Remote.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
