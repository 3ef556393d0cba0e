// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/phasecheck/intake"
	"github.com/danielhkuo/phasecheck/pipeline"
)

type fakeProcessor struct {
	mu      sync.Mutex
	batches []int
}

func (f *fakeProcessor) ProcessJSON(ctx context.Context, data []byte) (pipeline.Summary, error) {
	records, err := intake.DecodeBatch(data)
	if err != nil {
		return pipeline.Summary{}, err
	}
	f.mu.Lock()
	f.batches = append(f.batches, len(records))
	f.mu.Unlock()
	return pipeline.Summary{Received: len(records), Processed: len(records)}, nil
}

func (f *fakeProcessor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func setupInbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{ProcessedDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestProcessExisting(t *testing.T) {
	dir := setupInbox(t)
	writeFile(t, dir, "b.json", `[{}, {}]`)
	writeFile(t, dir, "a.json", `[{}]`)
	writeFile(t, dir, "bad.json", `{"not": "an array"}`)
	writeFile(t, dir, "notes.txt", `ignored`)

	proc := &fakeProcessor{}
	w := New(dir, proc)

	if err := w.ProcessExisting(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Name order: a.json, b.json (bad.json fails before reaching the count)
	if diff := cmp.Diff([]int{1, 2}, proc.batches); diff != "" {
		t.Errorf("Batches mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"a.json", "b.json"} {
		if _, err := os.Stat(filepath.Join(dir, ProcessedDir, name)); err != nil {
			t.Errorf("Expected %s in processed/: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, FailedDir, "bad.json")); err != nil {
		t.Errorf("Expected bad.json in failed/: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("Expected notes.txt to be left alone: %v", err)
	}
}

func TestProcessFile_NameCollision(t *testing.T) {
	dir := setupInbox(t)
	writeFile(t, filepath.Join(dir, ProcessedDir), "day.json", `[]`)
	path := writeFile(t, dir, "day.json", `[{}]`)

	w := New(dir, &fakeProcessor{})
	dest := w.ProcessFile(context.Background(), path)

	if dest == "" || filepath.Base(dest) == "day.json" {
		t.Fatalf("Expected a renamed destination, got %q", dest)
	}
	if filepath.Dir(dest) != filepath.Join(dir, ProcessedDir) {
		t.Errorf("Expected destination in processed/, got %s", dest)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected source file to be moved")
	}
}

func TestProcessFile_Missing(t *testing.T) {
	dir := setupInbox(t)
	w := New(dir, &fakeProcessor{})

	if dest := w.ProcessFile(context.Background(), filepath.Join(dir, "gone.json")); dest != "" {
		t.Errorf("Expected empty destination for missing file, got %q", dest)
	}
}

func TestSettled(t *testing.T) {
	w := New(t.TempDir(), &fakeProcessor{})
	now := time.Now()

	w.pending["old.json"] = now.Add(-time.Second)
	w.pending["new.json"] = now

	ready := w.settled(now)
	if diff := cmp.Diff([]string{"old.json"}, ready); diff != "" {
		t.Errorf("Settled mismatch (-want +got):\n%s", diff)
	}
	if _, ok := w.pending["new.json"]; !ok {
		t.Error("Expected new.json to stay pending")
	}
}

func TestIsBatchFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"batch.json", true},
		{"/inbox/BATCH.JSON", true},
		{".batch.json", false},
		{"batch.json.tmp", false},
		{"batch.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBatchFile(tt.name); got != tt.expected {
				t.Errorf("isBatchFile(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "startup.json", `[{}]`)

	proc := &fakeProcessor{}
	w := New(dir, proc)
	w.settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, func() bool { return proc.count() == 1 })

	writeFile(t, dir, "dropped.json", `[{}, {}, {}]`)
	waitFor(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, ProcessedDir, "dropped.json"))
		return err == nil
	})

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}

	if diff := cmp.Diff([]int{1, 3}, proc.batches); diff != "" {
		t.Errorf("Batches mismatch (-want +got):\n%s", diff)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for condition")
}
