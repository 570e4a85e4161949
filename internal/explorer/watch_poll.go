package explorer

import (
	"context"
	"os"
	"time"
)

// pollInterval is how often the polling watcher re-snapshots a directory.
// Grounded on the teacher's pkg/filesystem/watch_poll.go, which re-scans at
// a fixed interval and compares modification times/sizes rather than
// subscribing to OS-level events.
const pollInterval = 500 * time.Millisecond

// pollWatcher is the portable fallback watcher: it periodically stats the
// watched directory's immediate entries and signals a change whenever the
// set of names or any entry's ModTime/size/mode differs from the previous
// snapshot.
type pollWatcher struct {
	events chan struct{}
	cancel context.CancelFunc
}

func newPollWatcher(ctx context.Context, path string) *pollWatcher {
	ctx, cancel := context.WithCancel(ctx)
	w := &pollWatcher{
		events: make(chan struct{}, 1),
		cancel: cancel,
	}
	go w.run(ctx, path)
	return w
}

type pollSnapshotEntry struct {
	modTime time.Time
	size    int64
	mode    os.FileMode
}

func snapshotDirectory(path string) (map[string]pollSnapshotEntry, bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, false
	}
	snapshot := make(map[string]pollSnapshotEntry, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshot[entry.Name()] = pollSnapshotEntry{
			modTime: info.ModTime(),
			size:    info.Size(),
			mode:    info.Mode(),
		}
	}
	return snapshot, true
}

func snapshotsEqual(a, b map[string]pollSnapshotEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for name, entryA := range a {
		entryB, ok := b[name]
		if !ok || entryA != entryB {
			return false
		}
	}
	return true
}

func (w *pollWatcher) run(ctx context.Context, path string) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	previous, _ := snapshotDirectory(path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, ok := snapshotDirectory(path)
			if !ok {
				continue
			}
			if !snapshotsEqual(previous, current) {
				previous = current
				select {
				case w.events <- struct{}{}:
				default:
				}
			} else {
				previous = current
			}
		}
	}
}

func (w *pollWatcher) Events() <-chan struct{} {
	return w.events
}

func (w *pollWatcher) Close() error {
	w.cancel()
	return nil
}
