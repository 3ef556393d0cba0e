// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/intake"
	"github.com/danielhkuo/phasecheck/middleware"
	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/pipeline"
)

type SubmissionHandler struct {
	pipeline *pipeline.Pipeline
	cfg      cliparse.Config
}

func NewSubmissionHandler(p *pipeline.Pipeline, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{pipeline: p, cfg: cfg}
}

// ProcessBatch handles POST /submissions
// The body is a JSON array of questionnaire records. Invalid records are
// reported in the response, not treated as a request failure.
func (h *SubmissionHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	body, err := middleware.ReadBody(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.pipeline.ProcessJSON(r.Context(), body)
	if err != nil {
		if errors.Is(err, intake.ErrNotArray) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Body must be a JSON array of submissions")
			return
		}
		slog.Warn("rejected submission batch", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp := models.ProcessBatchResponse{
		Received:      summary.Received,
		Processed:     summary.Processed,
		Skipped:       summary.Skipped,
		Delivered:     summary.Delivered,
		StoreFailures: summary.StoreFailures,
		Rejections:    summary.Rejections,
		Results:       summary.Results,
	}
	if resp.Rejections == nil {
		resp.Rejections = []models.Rejection{}
	}
	if resp.Results == nil {
		resp.Results = []models.Result{}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
