package explorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drift-explorer/drift/internal/logging"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

func mustTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "drift-explorer-test-")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func waitForResult(t *testing.T, results <-chan Result, timeout time.Duration) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(timeout):
		t.Fatal("timed out waiting for scan result")
		return Result{}
	}
}

func TestControllerScansSubmittedDirectory(t *testing.T) {
	dir := mustTempDir(t)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	logger := logging.NewLogger(logging.LevelDisabled, os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewController(ctx, logger)
	defer c.Stop()

	c.Submit(Request{Dir: dir, Config: sortfilter.NewPipeline(nil, nil)})

	result := waitForResult(t, c.Results, 2*time.Second)
	if result.Err != nil {
		t.Fatalf("unexpected scan error: %v", result.Err)
	}
	if result.Buffer == nil {
		t.Fatal("expected a non-nil buffer")
	}
	if len(result.Buffer.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(result.Buffer.Nodes))
	}
}

// TestControllerCoalescesBurstsOfSubmit exercises the single-pending-slot
// rule: submitting many requests in a tight burst must not produce one
// result per submission. Since the first submission is picked up by run()
// almost immediately, we only assert that the number of results is far
// smaller than the number of submissions, which the coalescing behavior
// guarantees and a naive unbounded queue would not.
func TestControllerCoalescesBurstsOfSubmit(t *testing.T) {
	dir := mustTempDir(t)

	logger := logging.NewLogger(logging.LevelDisabled, os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewController(ctx, logger)
	defer c.Stop()

	const bursts = 50
	for i := 0; i < bursts; i++ {
		c.Submit(Request{Dir: dir, Config: sortfilter.NewPipeline(nil, nil)})
	}

	// Drain whatever results arrive within a bounded window.
	var count int
	deadline := time.After(500 * time.Millisecond)
drain:
	for {
		select {
		case <-c.Results:
			count++
		case <-deadline:
			break drain
		}
	}

	if count == 0 {
		t.Fatal("expected at least one scan result")
	}
	if count >= bursts {
		t.Fatalf("coalescing failed: got %d results for %d submissions", count, bursts)
	}
}

func TestPollWatcherDetectsNewEntry(t *testing.T) {
	dir := mustTempDir(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newPollWatcher(ctx, dir)
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll watcher to detect new entry")
	}
}

func TestSnapshotsEqual(t *testing.T) {
	a := map[string]pollSnapshotEntry{
		"x": {modTime: time.Unix(0, 0), size: 1, mode: 0o644},
	}
	b := map[string]pollSnapshotEntry{
		"x": {modTime: time.Unix(0, 0), size: 1, mode: 0o644},
	}
	if !snapshotsEqual(a, b) {
		t.Fatal("expected identical snapshots to compare equal")
	}

	c := map[string]pollSnapshotEntry{
		"x": {modTime: time.Unix(0, 0), size: 2, mode: 0o644},
	}
	if snapshotsEqual(a, c) {
		t.Fatal("expected differing size to compare unequal")
	}
}

func TestServiceSetDirectoryTriggersScan(t *testing.T) {
	dir := mustTempDir(t)

	logger := logging.NewLogger(logging.LevelDisabled, os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewService(ctx, logger)
	defer svc.Stop()

	svc.SetDirectory(dir, sortfilter.NewPipeline(nil, nil), "")

	result := waitForResult(t, svc.Results(), 2*time.Second)
	if result.Err != nil {
		t.Fatalf("unexpected scan error: %v", result.Err)
	}
	if result.Buffer == nil {
		t.Fatal("expected a non-nil buffer")
	}
}
