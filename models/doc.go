// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the pipeline.

# Domain Types

  - RawSubmission: one batch element as decoded from JSON, untyped
  - Submission: validated record with normalized answers
  - AnswerSet: q1-q6 answers; nil numeric fields are absent answers
  - Symptoms: the q5 answer (symptom list plus free text)
  - ScoreVector: per-phase heuristic points
  - Result: persisted outcome (phase, recommendations, delivery)
  - Rejection: index and reasons for a dropped batch element

# Request and Response Types

  - ClassifyRequest: responses map
  - ProcessBatchResponse: counts, rejections, results
  - ClassifyResponse: phase, scores, recommendations
  - RecommendationsResponse: phase, recommendations
  - ListResultsResponse: user_id, results
  - ErrorResponse: error, message, reasons

# Constants

Phases, in tie-break order:

	PhaseMenstruation, PhaseLuteal, PhaseOvulation, PhaseFollicular

PhaseUnknown is only produced when there is nothing to classify.

Delivery status values:

	DeliverySent    = "sent"
	DeliverySkipped = "skipped"
	DeliveryFailed  = "failed"

Question keys q1 (bleeding), q2 (mucus), q3 (libido), q4 (mood),
q5 (symptoms), q6 (energy).
*/
package models
