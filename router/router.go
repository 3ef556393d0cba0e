// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/handlers"
	"github.com/danielhkuo/phasecheck/middleware"
	"github.com/danielhkuo/phasecheck/pipeline"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, p *pipeline.Pipeline) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(p, cfg)
	classifyHandler := handlers.NewClassifyHandler(cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ingestion (requires X-Ingest-Key when configured)
	mux.HandleFunc("POST /submissions", middleware.WithLogging(
		middleware.RequireIngestKey(cfg.IngestKey, submissionHandler.ProcessBatch),
	))

	// Classification (stateless)
	mux.HandleFunc("POST /classify", middleware.WithLogging(classifyHandler.Classify))
	mux.HandleFunc("GET /recommendations/{phase}", middleware.WithLogging(classifyHandler.GetRecommendations))

	// Stored results (same key as ingestion; they hold health answers)
	mux.HandleFunc("GET /users/{user_id}/results", middleware.WithLogging(
		middleware.RequireIngestKey(cfg.IngestKey, resultsHandler.ListResults),
	))
	mux.HandleFunc("GET /users/{user_id}/results/{timestamp}", middleware.WithLogging(
		middleware.RequireIngestKey(cfg.IngestKey, resultsHandler.GetResult),
	))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("phasecheck API v1"))
	})

	return mux
}
