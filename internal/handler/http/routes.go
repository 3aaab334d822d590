// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes assembles the chi router for the admin surface.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.Ping)
		r.Post("/sync", h.SyncAll)
		r.Post("/sync/{collection}", h.SyncCollection)
		r.Post("/sync/{collection}/{id}", h.SyncDocument)
	})

	return router
}
