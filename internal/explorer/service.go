// Package explorer implements the asynchronous directory explorer of spec
// section 4.5: a single-flight scanner worker plus a filesystem watcher,
// both communicating with the main loop over channels and never touching
// App directly (spec section 5's "workers never touch it and only send
// events").
package explorer

import (
	"context"
	"sync"

	"github.com/drift-explorer/drift/internal/logging"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// Service combines the single-flight scanner Controller with a filesystem
// watcher that re-submits a scan whenever the watched directory changes,
// coalescing rapid bursts per spec section 4.5.
type Service struct {
	controller *Controller
	logger     *logging.Logger

	mu        sync.Mutex
	watcher   Watcher
	watchStop context.CancelFunc
	dir       string
	config    sortfilter.Pipeline
	lastFocus string

	ctx context.Context
}

// NewService starts the controller and returns a Service with no watched
// directory yet; call SetDirectory to begin watching and scanning.
func NewService(ctx context.Context, logger *logging.Logger) *Service {
	return &Service{
		controller: NewController(ctx, logger),
		logger:     logger,
		ctx:        ctx,
	}
}

// Results delivers completed scans, tagged by the directory they're for.
// Callers must check Result.Buffer.Parent (via App.ApplyBuffer) against
// the current pwd before applying it, since a directory change can race a
// scan already in flight.
func (s *Service) Results() <-chan Result {
	return s.controller.Results
}

// SetDirectory redirects watching to dir and submits an immediate scan.
// If dir differs from the previously watched directory, the old watcher
// is stopped and a new one started for the new directory.
func (s *Service) SetDirectory(dir string, config sortfilter.Pipeline, lastFocus string) {
	s.mu.Lock()
	changed := dir != s.dir
	s.dir = dir
	s.config = config
	s.lastFocus = lastFocus
	s.mu.Unlock()

	if changed {
		s.restartWatcher(dir)
	}

	s.controller.Submit(Request{Dir: dir, Config: config, LastFocus: lastFocus})
}

// Refresh re-submits a scan of the current directory with its current
// config, e.g. in response to an explicit Explore message or a filter/
// sorter mutation.
func (s *Service) Refresh() {
	s.mu.Lock()
	dir, config, lastFocus := s.dir, s.config, s.lastFocus
	s.mu.Unlock()
	if dir == "" {
		return
	}
	s.controller.Submit(Request{Dir: dir, Config: config, LastFocus: lastFocus})
}

func (s *Service) restartWatcher(dir string) {
	s.mu.Lock()
	if s.watcher != nil {
		s.watcher.Close()
	}
	watchCtx, cancel := context.WithCancel(s.ctx)
	s.watcher = newWatcher(watchCtx, dir, s.logger)
	s.watchStop = cancel
	watcher := s.watcher
	s.mu.Unlock()

	go s.forwardWatchEvents(watchCtx, watcher)
}

func (s *Service) forwardWatchEvents(ctx context.Context, watcher Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-watcher.Events():
			if !ok {
				return
			}
			s.Refresh()
		}
	}
}

// Stop halts the scanner and watcher goroutines.
func (s *Service) Stop() {
	s.controller.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.watchStop != nil {
		s.watchStop()
	}
}
