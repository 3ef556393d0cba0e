// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Ingest Key

Guard batch ingestion and result reads with a shared secret:

	mux.HandleFunc("POST /submissions", middleware.WithLogging(
		middleware.RequireIngestKey(cfg.IngestKey, h.ProcessBatch),
	))

Requests without a matching X-Ingest-Key header get a 401. An empty key
turns the check off.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with headers Content-Type and X-Ingest-Key.
Preflight requests are answered with 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid answers", reasons...)

Request bodies are capped at MaxBodyBytes:

	var req models.ClassifyRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Uses the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
*/
package middleware
