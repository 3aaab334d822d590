// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-fire-mirror/internal/config"
	handler "github.com/MKhiriev/go-fire-mirror/internal/handler/http"
	"github.com/MKhiriev/go-fire-mirror/internal/logger"
	"github.com/MKhiriev/go-fire-mirror/internal/remote"
	"github.com/MKhiriev/go-fire-mirror/internal/routing"
	"github.com/MKhiriev/go-fire-mirror/internal/store"
	"github.com/MKhiriev/go-fire-mirror/internal/syncer"
	"github.com/MKhiriev/go-fire-mirror/internal/workers"
	"github.com/MKhiriev/go-fire-mirror/models"
)

// Build metadata injected via -ldflags at release time.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.NewLogger("syncd")
	printBuildInfo(log)

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("syncd exited with error")
	}
}

func run(log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	mode, err := models.ParseMode(cfg.App.Mode)
	if err != nil {
		return err
	}
	readStrategy, err := models.ParseReadStrategy(cfg.Sync.ReadStrategy)
	if err != nil {
		return err
	}
	writeStrategy, err := models.ParseWriteStrategy(cfg.Sync.WriteStrategy)
	if err != nil {
		return err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	defer storages.DB.Close()

	if err = storages.DB.Migrate(); err != nil {
		return fmt.Errorf("migrate mirror database: %w", err)
	}

	documentStore := remote.NewClient(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		APIKey:  cfg.Remote.APIKey,
		Timeout: cfg.Remote.RequestTimeout,
	})

	manager := syncer.NewManager(documentStore, storages.Mirror, cfg.Sync.SyncOptions(), log)

	policy := routing.NewPolicy(mode, readStrategy, writeStrategy, storages.DB, log)
	log.Info().
		Str("func", "run").
		Str("mode", string(mode)).
		Str("read_strategy", string(readStrategy)).
		Str("write_strategy", string(writeStrategy)).
		Bool("sync_enabled", policy.SyncEnabled(models.OverrideInherit)).
		Msg("routing policy configured")

	worker := workers.NewSyncWorker(manager, cfg.Sync.Collections, cfg.Workers.SyncInterval, log)
	worker.Start(ctx)
	defer worker.Stop()

	adminHandler := handler.NewHandler(manager, storages.DB, cfg.Sync.Collections, log)
	server := &http.Server{
		Addr:         cfg.Server.HTTPAddress,
		Handler:      adminHandler.Routes(),
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().
			Str("func", "run").
			Str("address", cfg.Server.HTTPAddress).
			Msg("admin http server listening")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err = <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().
			Str("func", "run").
			Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown admin http server: %w", err)
	}

	return nil
}

func printBuildInfo(log *logger.Logger) {
	log.Info().
		Str("func", "printBuildInfo").
		Str("build_version", buildVersion).
		Str("build_date", buildDate).
		Str("build_commit", buildCommit).
		Msg("starting syncd")
}
