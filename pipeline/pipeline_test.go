// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/phasecheck/models"
	"github.com/danielhkuo/phasecheck/recommend"
)

type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]models.Result
	failFor map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]models.Result), failFor: make(map[string]bool)}
}

func (s *fakeStore) SaveResult(ctx context.Context, r models.Result) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[r.UserID] {
		return "", errors.New("disk full")
	}
	s.saved[r.UserID+"/"+r.Timestamp] = r
	return r.ID, nil
}

type fakeNotifier struct {
	calls  atomic.Int32
	status map[string]string
}

func (n *fakeNotifier) Notify(ctx context.Context, userID string, phase models.Phase, recs []string) models.Delivery {
	n.calls.Add(1)
	if s, ok := n.status[userID]; ok {
		return models.Delivery{Status: s}
	}
	return models.Delivery{Channel: models.ChannelEmail, Status: models.DeliverySent}
}

func record(userID string, q1, q2, q3, q6 float64, symptoms ...any) models.RawSubmission {
	return models.RawSubmission{
		"user_id":      userID,
		"timestamp":    "031524143000",
		"time_elapsed": 30.0,
		"responses": map[string]any{
			"q1": q1,
			"q2": q2,
			"q3": q3,
			"q4": 3.0,
			"q5": map[string]any{"symptoms": symptoms, "additional": "ok"},
			"q6": q6,
		},
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	p := New(store, notifier, 4)

	tooFast := record("fast", 3, 0, 1, 3)
	tooFast["time_elapsed"] = 1.0

	summary := p.Process(context.Background(), []models.RawSubmission{
		record("bleeding", 3, 0, 1, 3),
		record("ovulating", 0, 4, 2, 5, "High libido"),
		tooFast,
		nil,
		record("neutral", 0, 1, 1, 3),
	})

	if summary.Received != 5 || summary.Processed != 3 || summary.Skipped != 2 {
		t.Errorf("Unexpected counts: %+v", summary)
	}
	if summary.Delivered != 3 {
		t.Errorf("Expected 3 deliveries, got %d", summary.Delivered)
	}
	if summary.StoreFailures != 0 {
		t.Errorf("Expected no store failures, got %d", summary.StoreFailures)
	}
	if int(notifier.calls.Load()) != 3 {
		t.Errorf("Expected 3 notifications, got %d", notifier.calls.Load())
	}

	want := map[string]models.Phase{
		"bleeding":  models.PhaseMenstruation,
		"ovulating": models.PhaseOvulation,
		"neutral":   models.PhaseMenstruation,
	}
	for userID, phase := range want {
		r, ok := store.saved[userID+"/031524143000"]
		if !ok {
			t.Errorf("Expected result for %s to be stored", userID)
			continue
		}
		if r.Phase != phase {
			t.Errorf("%s: expected %s, got %s", userID, phase, r.Phase)
		}
		if diff := cmp.Diff(recommend.For(phase), r.Recommendations); diff != "" {
			t.Errorf("%s: recommendations mismatch (-want +got):\n%s", userID, diff)
		}
		if r.ID == "" {
			t.Errorf("%s: expected an ID", userID)
		}
	}

	if !store.saved["neutral/031524143000"].Degenerate {
		t.Error("Expected neutral answers to be flagged degenerate")
	}
	if store.saved["bleeding/031524143000"].Degenerate {
		t.Error("Expected bleeding answers not to be flagged degenerate")
	}

	var rejected []int
	for _, rej := range summary.Rejections {
		rejected = append(rejected, rej.Index)
	}
	if diff := cmp.Diff([]int{2, 3}, rejected); diff != "" {
		t.Errorf("rejection indexes mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess_UpstreamFailuresDoNotStopBatch(t *testing.T) {
	store := newFakeStore()
	store.failFor["broken"] = true
	notifier := &fakeNotifier{status: map[string]string{
		"unreachable": models.DeliveryFailed,
		"unknown":     models.DeliverySkipped,
	}}
	p := New(store, notifier, 2)

	summary := p.Process(context.Background(), []models.RawSubmission{
		record("broken", 3, 0, 1, 3),
		record("unreachable", 3, 0, 1, 3),
		record("unknown", 3, 0, 1, 3),
		record("fine", 3, 0, 1, 3),
	})

	if summary.Processed != 4 {
		t.Errorf("Expected 4 processed, got %d", summary.Processed)
	}
	if summary.StoreFailures != 1 {
		t.Errorf("Expected 1 store failure, got %d", summary.StoreFailures)
	}
	if summary.Delivered != 2 {
		t.Errorf("Expected 2 deliveries, got %d", summary.Delivered)
	}
	if len(store.saved) != 3 {
		t.Errorf("Expected 3 stored results, got %d", len(store.saved))
	}
	if got := store.saved["unreachable/031524143000"].Delivery.Status; got != models.DeliveryFailed {
		t.Errorf("Expected failed delivery to be stored, got %s", got)
	}
}

func TestProcess_EmptyBatch(t *testing.T) {
	p := New(newFakeStore(), &fakeNotifier{}, 1)

	summary := p.Process(context.Background(), nil)
	if summary.Received != 0 || summary.Processed != 0 || summary.Skipped != 0 {
		t.Errorf("Expected zero counts, got %+v", summary)
	}
}

func TestProcess_ManyRecords(t *testing.T) {
	store := newFakeStore()
	p := New(store, &fakeNotifier{}, 8)

	var records []models.RawSubmission
	for i := 0; i < 200; i++ {
		r := record(fmt.Sprintf("user-%03d", i), float64(i%5), float64(i%5), float64(i%5+1), float64(i%5+1))
		if i%10 == 0 {
			r["user_id"] = ""
		}
		records = append(records, r)
	}

	summary := p.Process(context.Background(), records)
	if summary.Processed+summary.Skipped != summary.Received {
		t.Errorf("processed+skipped = %d, want %d", summary.Processed+summary.Skipped, summary.Received)
	}
	if summary.Skipped != 20 {
		t.Errorf("Expected 20 skipped, got %d", summary.Skipped)
	}
	if len(store.saved) != 180 {
		t.Errorf("Expected 180 stored results, got %d", len(store.saved))
	}
}

func TestProcessJSON(t *testing.T) {
	p := New(newFakeStore(), &fakeNotifier{}, 2)

	summary, err := p.ProcessJSON(context.Background(), []byte(`[
		{"user_id":"a","timestamp":"031524143000","time_elapsed":12,
		 "responses":{"Q1":2,"Q2":0,"Q3":1,"Q4":3,"Q5":{"symptoms":["Cramps"]},"Q6":1}},
		"not an object"
	]`))
	if err != nil {
		t.Fatalf("ProcessJSON failed: %v", err)
	}
	if summary.Processed != 1 || summary.Skipped != 1 {
		t.Errorf("Unexpected counts: %+v", summary)
	}
	if summary.Results[0].Phase != models.PhaseMenstruation {
		t.Errorf("Expected Menstruation, got %s", summary.Results[0].Phase)
	}

	if _, err := p.ProcessJSON(context.Background(), []byte(`{"user_id":"a"}`)); err == nil {
		t.Error("Expected error for non-array body")
	}
}
