// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/phasecheck/classify"
	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/intake"
	"github.com/danielhkuo/phasecheck/middleware"
	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/recommend"
)

type ClassifyHandler struct {
	cfg cliparse.Config
}

func NewClassifyHandler(cfg cliparse.Config) *ClassifyHandler {
	return &ClassifyHandler{cfg: cfg}
}

// Classify handles POST /classify
// Scores a single set of answers without storing or notifying anything.
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Responses) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "responses is required")
		return
	}

	answers, reasons := intake.NormalizeAnswers(intake.LowerKeys(req.Responses))
	if len(reasons) > 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid answers", reasons...)
		return
	}

	phase, scores := classify.Evaluate(&answers)

	middleware.JSONResponse(w, http.StatusOK, models.ClassifyResponse{
		Phase:           phase,
		Scores:          scores,
		Degenerate:      scores.Degenerate(),
		Recommendations: recommend.For(phase),
	})
}

// GetRecommendations handles GET /recommendations/{phase}
func (h *ClassifyHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	phase, ok := models.ParsePhase(r.PathValue("phase"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown phase")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecommendationsResponse{
		Phase:           phase,
		Recommendations: recommend.For(phase),
	})
}
