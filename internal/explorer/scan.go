package explorer

import (
	"context"

	"github.com/drift-explorer/drift/internal/node"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// Explore lists parent, applies config's filter/sort pipeline, and restores
// focus to lastFocus if it's still present. This is the combining step
// described in spec section 4.1: node.Scan stays pure and unaware of the
// pipeline so that internal/node and internal/sortfilter don't import each
// other.
func Explore(ctx context.Context, parent string, config sortfilter.Pipeline, lastFocus string) (*node.DirectoryBuffer, error) {
	buffer, err := node.Scan(ctx, parent)
	if err != nil {
		return nil, err
	}

	buffer.Nodes = config.Apply(buffer.Nodes)

	if lastFocus != "" {
		if idx := buffer.IndexOfRelativePath(lastFocus); idx >= 0 {
			buffer.Focus = idx
		}
	}
	buffer.ClampFocus()

	return buffer, nil
}
