// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the phasecheck API.

# Handler Types

Each handler is a struct built by a constructor:

  - SubmissionHandler: Batch ingestion through the pipeline
  - ClassifyHandler: Stateless classification and recommendation lookup
  - ResultsHandler: Stored results per user

	submissionHandler := handlers.NewSubmissionHandler(p, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

# Ingestion

	POST /submissions → ProcessBatch

The body is a JSON array of questionnaire records. A body that is not an
array is a 400; individual bad records are not. They come back in the
rejections list with every reason that applied, and the rest of the batch
is classified, notified and stored as usual.

When an ingest key is configured this route and the results routes
require the X-Ingest-Key header (see middleware.RequireIngestKey).

# Classification

	POST /classify                → Classify
	GET  /recommendations/{phase} → GetRecommendations

Classify scores a single "responses" object without touching storage.
Answers out of range produce a 422 with reasons. Phase names are matched
case-insensitively; "unknown" returns the fallback advice.

# Results

	GET /users/{user_id}/results             → ListResults (?limit, default 30)
	GET /users/{user_id}/results/{timestamp} → GetResult

Timestamps use the submission format MMDDYYHHMMSS.
*/
package handlers
