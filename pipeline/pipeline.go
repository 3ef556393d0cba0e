// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/phasecheck/classify"
	"github.com/danielhkuo/phasecheck/intake"
	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/recommend"
)

// ResultSaver persists a classified submission and returns its stored ID.
type ResultSaver interface {
	SaveResult(ctx context.Context, r models.Result) (string, error)
}

// Notifier delivers recommendations to a user.
type Notifier interface {
	Notify(ctx context.Context, userID string, phase models.Phase, recs []string) models.Delivery
}

// Summary reports what happened to a batch. Processed + Skipped == Received.
type Summary struct {
	Received      int
	Processed     int
	Skipped       int
	Delivered     int
	StoreFailures int
	Rejections    []models.Rejection
	Results       []models.Result
}

// Pipeline runs validate, classify, recommend, notify, persist for every
// record of a batch. Records are independent and run concurrently.
type Pipeline struct {
	store    ResultSaver
	notifier Notifier
	workers  int
	now      func() time.Time
}

// New creates a pipeline running at most workers records at once.
func New(store ResultSaver, notifier Notifier, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		store:    store,
		notifier: notifier,
		workers:  workers,
		now:      time.Now,
	}
}

// ProcessJSON decodes a JSON array batch and processes it.
func (p *Pipeline) ProcessJSON(ctx context.Context, data []byte) (Summary, error) {
	records, err := intake.DecodeBatch(data)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to decode batch: %w", err)
	}
	return p.Process(ctx, records), nil
}

// Process validates the batch and handles every accepted record. Storage
// and delivery failures are logged and counted; they never stop the batch.
func (p *Pipeline) Process(ctx context.Context, records []models.RawSubmission) Summary {
	batch := intake.ValidateBatch(records)

	for _, rej := range batch.Rejected {
		slog.Warn("skipping submission",
			"index", rej.Index,
			"user_id", rej.UserID,
			"reason", strings.Join(rej.Reasons, " "),
		)
	}

	results := make([]models.Result, len(batch.Accepted))
	stored := make([]bool, len(batch.Accepted))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, sub := range batch.Accepted {
		g.Go(func() error {
			results[i], stored[i] = p.handle(ctx, sub)
			return nil
		})
	}
	g.Wait()

	summary := Summary{
		Received:   len(records),
		Processed:  len(batch.Accepted),
		Skipped:    len(batch.Rejected),
		Rejections: batch.Rejected,
		Results:    results,
	}
	for i, r := range results {
		if r.Delivery.Status == models.DeliverySent {
			summary.Delivered++
		}
		if !stored[i] {
			summary.StoreFailures++
		}
	}

	slog.Info("batch processed",
		"received", summary.Received,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"delivered", summary.Delivered,
		"store_failures", summary.StoreFailures,
	)

	return summary
}

// handle runs one accepted submission through the rest of the pipeline.
// The bool reports whether the result was stored.
func (p *Pipeline) handle(ctx context.Context, sub models.Submission) (models.Result, bool) {
	phase, scores := classify.Evaluate(&sub.Answers)
	if scores.Degenerate() {
		slog.Warn("no phase signal matched, using tie-break default",
			"user_id", sub.UserID,
			"timestamp", sub.Timestamp,
			"phase", phase,
		)
	}

	recs := recommend.For(phase)

	delivery := p.notifier.Notify(ctx, sub.UserID, phase, recs)
	switch delivery.Status {
	case models.DeliveryFailed:
		slog.Error("notification failed",
			"user_id", sub.UserID,
			"channel", delivery.Channel,
			"error", delivery.Detail,
		)
	case models.DeliverySkipped:
		slog.Info("notification skipped", "user_id", sub.UserID, "reason", delivery.Detail)
	}

	r := models.Result{
		ID:              uuid.NewString(),
		UserID:          sub.UserID,
		Timestamp:       sub.Timestamp,
		SubmittedAt:     sub.SubmittedAt,
		TimeElapsed:     sub.TimeElapsed,
		Answers:         sub.Answers,
		Phase:           phase,
		Scores:          scores,
		Degenerate:      scores.Degenerate(),
		Recommendations: recs,
		Delivery:        delivery,
		CreatedAt:       p.now().UTC(),
	}

	id, err := p.store.SaveResult(ctx, r)
	if err != nil {
		slog.Error("failed to store result",
			"user_id", sub.UserID,
			"timestamp", sub.Timestamp,
			"error", err,
		)
		return r, false
	}
	r.ID = id

	slog.Info("submission classified",
		"user_id", sub.UserID,
		"timestamp", sub.Timestamp,
		"phase", phase,
		"delivery", delivery.Status,
	)
	return r, true
}
