// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/testutil"
)

func TestListResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn, testutil.GetTestConfig())

	testutil.SaveTestResult(t, conn, "alice", "010124080000", models.PhaseMenstruation)
	testutil.SaveTestResult(t, conn, "alice", "011524080000", models.PhaseOvulation)
	testutil.SaveTestResult(t, conn, "alice", "012524080000", models.PhaseLuteal)
	testutil.SaveTestResult(t, conn, "bob", "010124080000", models.PhaseFollicular)

	tests := []struct {
		name           string
		userID         string
		query          string
		expectedStatus int
		expectedPhases []models.Phase
	}{
		{
			name:           "most recent first",
			userID:         "alice",
			expectedStatus: http.StatusOK,
			expectedPhases: []models.Phase{models.PhaseLuteal, models.PhaseOvulation, models.PhaseMenstruation},
		},
		{
			name:           "limit",
			userID:         "alice",
			query:          "?limit=1",
			expectedStatus: http.StatusOK,
			expectedPhases: []models.Phase{models.PhaseLuteal},
		},
		{
			name:           "no results",
			userID:         "nobody",
			expectedStatus: http.StatusOK,
			expectedPhases: []models.Phase{},
		},
		{
			name:           "bad limit",
			userID:         "alice",
			query:          "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit too large",
			userID:         "alice",
			query:          "?limit=1000",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/users/"+tt.userID+"/results"+tt.query, nil)
			req.SetPathValue("user_id", tt.userID)
			w := httptest.NewRecorder()
			handler.ListResults(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.ListResultsResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.UserID != tt.userID {
				t.Errorf("Expected user_id %s, got %s", tt.userID, resp.UserID)
			}
			if resp.Results == nil {
				t.Fatal("Expected results to be an empty list, not null")
			}
			if len(resp.Results) != len(tt.expectedPhases) {
				t.Fatalf("Expected %d results, got %d", len(tt.expectedPhases), len(resp.Results))
			}
			for i, phase := range tt.expectedPhases {
				if resp.Results[i].Phase != phase {
					t.Errorf("Result %d: expected phase %s, got %s", i, phase, resp.Results[i].Phase)
				}
			}
		})
	}
}

func TestGetResult(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn, testutil.GetTestConfig())

	id := testutil.SaveTestResult(t, conn, "alice", "010124080000", models.PhaseLuteal)

	tests := []struct {
		name           string
		userID         string
		timestamp      string
		expectedStatus int
	}{
		{"found", "alice", "010124080000", http.StatusOK},
		{"other user", "bob", "010124080000", http.StatusNotFound},
		{"other timestamp", "alice", "010224080000", http.StatusNotFound},
		{"bad timestamp", "alice", "2024-01-01", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/users/"+tt.userID+"/results/"+tt.timestamp, nil)
			req.SetPathValue("user_id", tt.userID)
			req.SetPathValue("timestamp", tt.timestamp)
			w := httptest.NewRecorder()
			handler.GetResult(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.Result
			testutil.AssertJSON(t, w, &resp)
			if resp.ID != id {
				t.Errorf("Expected ID %s, got %s", id, resp.ID)
			}
			if resp.Phase != models.PhaseLuteal {
				t.Errorf("Expected phase %s, got %s", models.PhaseLuteal, resp.Phase)
			}
			if resp.SubmittedAt.Format("010206150405") != tt.timestamp {
				t.Errorf("Expected submitted_at to match timestamp, got %s", resp.SubmittedAt)
			}
		})
	}
}
