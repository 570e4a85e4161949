package explorer

import "context"

// Watcher monitors a directory for create/delete/modify/rename events and
// delivers a coalesced pulse on Events for each batch it observes. It
// never inspects file contents; the receiver always reacts by re-running
// a full Explore, so the watcher's only job is "something changed,
// rescan" (spec section 4.5).
type Watcher interface {
	// Events delivers a value (content irrelevant) whenever the watched
	// directory appears to have changed.
	Events() <-chan struct{}
	// Close stops watching and releases any underlying resources.
	Close() error
}

// newWatcher constructs the best available watcher for path, falling back
// to polling when no native backend is available for the current platform
// or when the native backend fails to start (e.g. an exotic filesystem:
// FUSE, network mount) — satisfying spec section 4.5's requirement that
// some watcher always produces Explore events.
func newWatcher(ctx context.Context, path string, logger watchLogger) Watcher {
	if w, err := newNativeWatcher(ctx, path); err == nil {
		return w
	} else if logger != nil {
		logger.Warnf("native filesystem watch unavailable for %s, falling back to polling: %v", path, err)
	}
	return newPollWatcher(ctx, path)
}

// watchLogger is the minimal logging surface newWatcher needs, satisfied
// by *internal/logging.Logger without this file importing that package
// just for a warning call.
type watchLogger interface {
	Warnf(format string, v ...interface{})
}
