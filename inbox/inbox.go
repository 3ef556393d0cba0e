// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/danielhkuo/phasecheck/pipeline"
)

// Subdirectories that hold batch files once handled.
const (
	ProcessedDir = "processed"
	FailedDir    = "failed"
)

// DefaultSettle is how long a file must go without events before it is read.
const DefaultSettle = 500 * time.Millisecond

// Processor handles one JSON batch.
type Processor interface {
	ProcessJSON(ctx context.Context, data []byte) (pipeline.Summary, error)
}

// Watcher feeds *.json batch files dropped into a directory to a Processor.
type Watcher struct {
	dir    string
	proc   Processor
	settle time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
}

func New(dir string, proc Processor) *Watcher {
	return &Watcher{
		dir:     dir,
		proc:    proc,
		settle:  DefaultSettle,
		pending: make(map[string]time.Time),
	}
}

// Run handles the files already in the directory, then watches for new
// ones until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for _, sub := range []string{ProcessedDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create inbox directories: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch before the initial scan so nothing dropped in between is missed.
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	slog.Info("watching inbox", "dir", w.dir)

	if err := w.ProcessExisting(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.settle / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isBatchFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.mu.Lock()
				w.pending[event.Name] = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("inbox watcher error", "error", err)

		case <-ticker.C:
			for _, path := range w.settled(time.Now()) {
				w.ProcessFile(ctx, path)
			}
		}
	}
}

// ProcessExisting handles every batch file currently in the directory, in
// name order.
func (w *Watcher) ProcessExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && isBatchFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w.ProcessFile(ctx, filepath.Join(w.dir, name))
	}
	return nil
}

// ProcessFile runs one batch file through the processor and moves it to
// processed/ or, when the file is not a JSON array, to failed/. It returns
// the final location, or "" when the file could not be read.
func (w *Watcher) ProcessFile(ctx context.Context, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read batch file", "file", path, "error", err)
		}
		return ""
	}

	slog.Info("processing batch file",
		"file", filepath.Base(path),
		"size", humanize.Bytes(uint64(len(data))),
	)

	dest := ProcessedDir
	summary, err := w.proc.ProcessJSON(ctx, data)
	if err != nil {
		slog.Error("batch file rejected", "file", filepath.Base(path), "error", err)
		dest = FailedDir
	} else {
		slog.Info("batch file processed",
			"file", filepath.Base(path),
			"processed", summary.Processed,
			"skipped", summary.Skipped,
		)
	}

	moved, err := w.move(path, dest)
	if err != nil {
		slog.Error("failed to move batch file", "file", path, "error", err)
		return ""
	}
	return moved
}

// settled removes and returns the pending files that have been quiet for
// the settle period.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// move renames path into the given subdirectory. An existing file of the
// same name is not overwritten; the new one gets a time prefix.
func (w *Watcher) move(path, sub string) (string, error) {
	name := filepath.Base(path)
	dest := filepath.Join(w.dir, sub, name)
	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(w.dir, sub, time.Now().UTC().Format("20060102T150405.000000000")+"-"+name)
	}
	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func isBatchFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(strings.ToLower(base), ".json") && !strings.HasPrefix(base, ".")
}
