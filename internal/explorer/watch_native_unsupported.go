//go:build !linux && !darwin
// +build !linux,!darwin

package explorer

import (
	"context"

	"github.com/pkg/errors"
)

// newNativeWatcher has no implementation on platforms other than linux and
// darwin; newWatcher falls back to the polling watcher in that case, per
// spec section 4.5's "some watcher always produces Explore events" even on
// an unsupported OS.
func newNativeWatcher(ctx context.Context, path string) (Watcher, error) {
	return nil, errors.New("native filesystem watching is not implemented on this platform")
}
