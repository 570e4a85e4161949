// Package node implements the directory entry model and the scanning
// operation that enumerates a directory into a slice of Nodes in listing
// order, unfiltered and unsorted. It is pure aside from the stat syscalls it performs: no global
// state, no caching beyond what's passed in.
package node

// CanonicalMeta describes the metadata of the fully resolved (all symlink
// hops followed) target of a node. For non-symlink nodes this mirrors the
// node's own metadata.
type CanonicalMeta struct {
	AbsolutePath string
	Extension    string
	IsDir        bool
	IsFile       bool
	IsReadonly   bool
	MimeEssence  string
	Size         uint64
}

// SymlinkMeta describes the metadata of a symlink's direct (single-hop)
// target. It is present only when the node is itself a symlink, and its
// presence indicates the target is resolvable (i.e. the link is not
// broken).
type SymlinkMeta struct {
	AbsolutePath string
	Extension    string
	IsDir        bool
	IsFile       bool
	IsReadonly   bool
	MimeEssence  string
	Size         uint64
}

// Node is a snapshot of a single directory entry.
type Node struct {
	Parent       string
	RelativePath string
	AbsolutePath string

	Extension   string
	IsDir       bool
	IsFile      bool
	IsSymlink   bool
	IsReadonly  bool
	MimeEssence string
	Size        uint64

	// Canonical is set for every node except a broken symlink, where it is
	// zero-valued. For non-symlinks it equals the node's own metadata; for
	// resolvable symlinks it describes the fully resolved target.
	Canonical CanonicalMeta

	// Symlink is set only when IsSymlink is true and the link target is
	// resolvable.
	Symlink *SymlinkMeta
}

// DirectoryBuffer is the ordered, filtered, sorted view of a directory along
// with a focus index into Nodes.
type DirectoryBuffer struct {
	Parent string
	Nodes  []*Node
	Total  int
	Focus  int
}

// ClampFocus ensures Focus lies within [0, len(Nodes)-1], or is 0 when Nodes
// is empty.
func (b *DirectoryBuffer) ClampFocus() {
	if len(b.Nodes) == 0 {
		b.Focus = 0
		return
	}
	if b.Focus < 0 {
		b.Focus = 0
	} else if b.Focus >= len(b.Nodes) {
		b.Focus = len(b.Nodes) - 1
	}
}

// FocusedNode returns the node at Focus, or nil if the buffer is empty.
func (b *DirectoryBuffer) FocusedNode() *Node {
	if len(b.Nodes) == 0 {
		return nil
	}
	return b.Nodes[b.Focus]
}

// IndexOfRelativePath returns the index of the node with the given relative
// path, or -1 if absent.
func (b *DirectoryBuffer) IndexOfRelativePath(relativePath string) int {
	for i, n := range b.Nodes {
		if n.RelativePath == relativePath {
			return i
		}
	}
	return -1
}

// IndexOfAbsolutePath returns the index of the node with the given absolute
// path, or -1 if absent.
func (b *DirectoryBuffer) IndexOfAbsolutePath(absolutePath string) int {
	for i, n := range b.Nodes {
		if n.AbsolutePath == absolutePath {
			return i
		}
	}
	return -1
}

// IndexOfFileName returns the index of the first node whose relative path
// (the entry's own file name, since relative paths never contain a
// separator) equals name, or -1 if absent.
func (b *DirectoryBuffer) IndexOfFileName(name string) int {
	return b.IndexOfRelativePath(name)
}
