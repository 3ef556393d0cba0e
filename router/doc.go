// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the phasecheck API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, p)

# Endpoints

Health:

	GET /health

Ingestion (requires X-Ingest-Key when INGEST_KEY is set):

	POST /submissions - Validate, classify, notify and store a batch

Classification (stateless):

	POST /classify                - Classify one set of answers
	GET  /recommendations/{phase} - Recommendations for a phase

Results (requires X-Ingest-Key when INGEST_KEY is set):

	GET /users/{user_id}/results             - A user's results, newest first
	GET /users/{user_id}/results/{timestamp} - One stored result

Every route except health and root is wrapped in middleware.WithLogging.
CORS is applied by the caller around the whole mux.
*/
package router
