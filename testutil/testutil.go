// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/phasecheck/cliparse"
	"github.com/danielhkuo/phasecheck/db"
	"github.com/danielhkuo/phasecheck/models"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Shared cache keeps the database alive across pooled connections;
	// the random name keeps tests apart.
	url := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		Workers:      2,
		IngestKey:    "test-ingest-key",
	}
}

// ValidSubmission returns a raw record that passes every intake check and
// classifies as Menstruation.
func ValidSubmission(userID, timestamp string) models.RawSubmission {
	return models.RawSubmission{
		"user_id":      userID,
		"timestamp":    timestamp,
		"time_elapsed": 42.5,
		"responses": map[string]any{
			"q1": 3,
			"q2": 0,
			"q3": 2,
			"q4": 3,
			"q5": map[string]any{
				"symptoms":   []any{"Cramps", "Bloating"},
				"additional": "",
			},
			"q6": 2,
		},
	}
}

// SaveTestResult stores a classified result directly and returns its ID
func SaveTestResult(t *testing.T, conn *sql.DB, userID, timestamp string, phase models.Phase) string {
	t.Helper()

	submittedAt, err := time.Parse("010206150405", timestamp)
	if err != nil {
		t.Fatalf("Bad test timestamp %q: %v", timestamp, err)
	}

	id, err := db.NewResultStore(conn).SaveResult(context.Background(), models.Result{
		ID:              uuid.NewString(),
		UserID:          userID,
		Timestamp:       timestamp,
		SubmittedAt:     submittedAt,
		TimeElapsed:     30,
		Phase:           phase,
		Recommendations: []string{"Rest."},
		Delivery:        models.Delivery{Status: models.DeliverySkipped},
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to save test result: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
