package node

import "github.com/dustin/go-humanize"

// HumanSize renders a node's size as a human-readable byte count (e.g.
// "4.2 MB"). Directories display "-" rather than "0 B" since their Size
// field is stored verbatim but suppressed in rendering contexts per the
// node model's documented invariant.
func (n *Node) HumanSize() string {
	if n.IsDir {
		return "-"
	}
	return humanize.Bytes(n.Size)
}
