// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/phasecheck/models"
)

var ErrNotFound = errors.New("result not found")

// ResultStore persists classified submissions keyed by (user_id, timestamp).
type ResultStore struct {
	db *sql.DB
}

func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db}
}

// SaveResult upserts a result and returns the stored row ID. A resubmission
// with the same user and timestamp replaces the earlier outcome but keeps
// its ID.
func (s *ResultStore) SaveResult(ctx context.Context, r models.Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	responses, err := json.Marshal(r.Answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode responses: %w", err)
	}
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return "", fmt.Errorf("failed to encode scores: %w", err)
	}
	recs, err := json.Marshal(r.Recommendations)
	if err != nil {
		return "", fmt.Errorf("failed to encode recommendations: %w", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO phase_result (
			id, user_id, submission_ts, submitted_at, time_elapsed, responses,
			phase, scores, degenerate, recommendations,
			delivery_channel, delivery_status, delivery_detail, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, submission_ts) DO UPDATE SET
			submitted_at = excluded.submitted_at,
			time_elapsed = excluded.time_elapsed,
			responses = excluded.responses,
			phase = excluded.phase,
			scores = excluded.scores,
			degenerate = excluded.degenerate,
			recommendations = excluded.recommendations,
			delivery_channel = excluded.delivery_channel,
			delivery_status = excluded.delivery_status,
			delivery_detail = excluded.delivery_detail,
			created_at = excluded.created_at
		RETURNING id
	`,
		r.ID, r.UserID, r.Timestamp, r.SubmittedAt.UTC().Format(time.RFC3339), r.TimeElapsed, string(responses),
		string(r.Phase), string(scores), r.Degenerate, string(recs),
		r.Delivery.Channel, r.Delivery.Status, r.Delivery.Detail, r.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to save result for %s/%s: %w", r.UserID, r.Timestamp, err)
	}

	return id, nil
}

// GetResult returns the result for one submission, or ErrNotFound.
func (s *ResultStore) GetResult(ctx context.Context, userID, timestamp string) (models.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+resultColumns+`
		FROM phase_result
		WHERE user_id = $1 AND submission_ts = $2
	`, userID, timestamp)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Result{}, ErrNotFound
	}
	if err != nil {
		return models.Result{}, err
	}
	return r, nil
}

// ListResults returns a user's results, most recent submission first.
func (s *ResultStore) ListResults(ctx context.Context, userID string, limit int) ([]models.Result, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM phase_result
		WHERE user_id = $1
		ORDER BY submitted_at DESC, created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

const resultColumns = `id, user_id, submission_ts, submitted_at, time_elapsed, responses,
		phase, scores, degenerate, recommendations,
		delivery_channel, delivery_status, delivery_detail, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (models.Result, error) {
	var r models.Result
	var submittedAt, createdAt, responses, scores, recs, phase string
	var channel, detail sql.NullString

	err := row.Scan(
		&r.ID, &r.UserID, &r.Timestamp, &submittedAt, &r.TimeElapsed, &responses,
		&phase, &scores, &r.Degenerate, &recs,
		&channel, &r.Delivery.Status, &detail, &createdAt,
	)
	if err != nil {
		return models.Result{}, err
	}

	r.Phase = models.Phase(phase)
	r.Delivery.Channel = channel.String
	r.Delivery.Detail = detail.String

	if r.SubmittedAt, err = time.Parse(time.RFC3339, submittedAt); err != nil {
		return models.Result{}, fmt.Errorf("invalid submitted_at for %s: %w", r.ID, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Result{}, fmt.Errorf("invalid created_at for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(responses), &r.Answers); err != nil {
		return models.Result{}, fmt.Errorf("invalid responses for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(scores), &r.Scores); err != nil {
		return models.Result{}, fmt.Errorf("invalid scores for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(recs), &r.Recommendations); err != nil {
		return models.Result{}, fmt.Errorf("invalid recommendations for %s: %w", r.ID, err)
	}

	return r, nil
}
