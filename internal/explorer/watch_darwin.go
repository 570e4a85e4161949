//go:build darwin
// +build darwin

package explorer

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/mutagen-io/fsevents"
	"github.com/pkg/errors"
)

// fseventsLatency coalesces bursts of native events (e.g. an editor's
// write-rename-chmod sequence) into a single pulse, mirroring the
// teacher's fseventsCoalescingLatency in
// pkg/filesystem/watch_native_recursive_fsevents.go.
const fseventsLatency = 25 * time.Millisecond

type fseventsWatcher struct {
	stream *fsevents.EventStream
	events chan struct{}
	cancel context.CancelFunc
}

func newNativeWatcher(ctx context.Context, path string) (Watcher, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat watch root")
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, errors.New("unable to extract raw device metadata")
	}

	raw := make(chan []fsevents.Event, 16)
	stream := &fsevents.EventStream{
		Events:  raw,
		Paths:   []string{path},
		Latency: fseventsLatency,
		Device:  stat.Dev,
		Flags:   fsevents.WatchRoot | fsevents.FileEvents,
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &fseventsWatcher{
		stream: stream,
		events: make(chan struct{}, 1),
		cancel: cancel,
	}

	stream.Start()
	go w.forward(ctx, raw)
	return w, nil
}

func (w *fseventsWatcher) forward(ctx context.Context, raw <-chan []fsevents.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-raw:
			if !ok {
				return
			}
			if len(batch) > 0 {
				select {
				case w.events <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (w *fseventsWatcher) Events() <-chan struct{} {
	return w.events
}

func (w *fseventsWatcher) Close() error {
	w.cancel()
	w.stream.Stop()
	return nil
}
