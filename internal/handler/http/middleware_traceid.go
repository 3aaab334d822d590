// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

const traceIDHeader = "X-Trace-Id"

// withTraceID attaches a request-scoped logger carrying a trace id to the
// request context. An incoming X-Trace-Id header is honored so callers can
// correlate; otherwise a fresh UUID is generated and echoed back.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = h.idGenerator.Generate()
		}
		w.Header().Set(traceIDHeader, traceID)

		requestLogger := h.logger.With().Str("trace_id", traceID).Logger()
		ctx := requestLogger.WithContext(r.Context())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
