// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/db"
	"github.com/danielhkuo/phasecheck/intake"
	"github.com/danielhkuo/phasecheck/middleware"
	"github.com/danielhkuo/phasecheck/models"
)

// maxListLimit bounds ?limit on result listings.
const maxListLimit = 365

type ResultsHandler struct {
	store *db.ResultStore
	cfg   cliparse.Config
}

func NewResultsHandler(conn *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: db.NewResultStore(conn), cfg: cfg}
}

// ListResults handles GET /users/{user_id}/results
// Most recent submission first. Optional ?limit (default 30).
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	results, err := h.store.ListResults(r.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to list results", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListResultsResponse{
		UserID:  userID,
		Results: results,
	})
}

// GetResult handles GET /users/{user_id}/results/{timestamp}
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	timestamp := r.PathValue("timestamp")

	if _, err := intake.ParseTimestamp(timestamp); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "timestamp must be MMDDYYHHMMSS")
		return
	}

	result, err := h.store.GetResult(r.Context(), userID, timestamp)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Result not found")
		return
	}
	if err != nil {
		slog.Error("failed to get result", "user_id", userID, "timestamp", timestamp, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
