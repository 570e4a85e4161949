package node

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	direrrors "github.com/drift-explorer/drift/internal/errors"
)

// parallelThreshold is the entry count above which stat probing is farmed
// out to a worker pool. Below it, sequential probing avoids goroutine
// scheduling overhead for the common case of small directories. Grounded on
// mutagen's pkg/filesystem/directory_posix_parallel.go, which applies the
// same kind of threshold before parallelizing metadata probing.
const parallelThreshold = 256

// ErrScanCancelled indicates that a scan was cancelled via its context before
// completing, e.g. because the explorer controller was stopped.
var ErrScanCancelled = errors.New("scan cancelled")

// Scan lists parent's entries and builds a Node for each, in directory
// listing order with no filtering or sorting applied. Filtering and sorting
// are the sortfilter package's concern (node can't import it: sortfilter's
// compiled matchers themselves operate on *node.Node, so the dependency
// would cycle); callers compose the two, as internal/explorer does.
func Scan(ctx context.Context, parent string) (*DirectoryBuffer, error) {
	info, err := os.Stat(parent)
	if err != nil {
		return nil, &direrrors.ScanError{Path: parent, Cause: err}
	}
	if !info.IsDir() {
		return nil, &direrrors.ScanError{Path: parent, Cause: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, &direrrors.ScanError{Path: parent, Cause: errors.Wrap(err, "unable to read directory")}
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	nodes, err := buildNodes(ctx, parent, names)
	if err != nil {
		return nil, err
	}

	return &DirectoryBuffer{
		Parent: parent,
		Nodes:  nodes,
		Total:  len(entries),
	}, nil
}

// buildNodes constructs a Node for every name in names, choosing a
// sequential or parallel strategy based on parallelThreshold.
func buildNodes(ctx context.Context, parent string, names []string) ([]*Node, error) {
	if len(names) < parallelThreshold {
		return buildNodesSequential(ctx, parent, names)
	}
	return buildNodesParallel(ctx, parent, names)
}

func buildNodesSequential(ctx context.Context, parent string, names []string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(names))
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ErrScanCancelled
		default:
		}
		n, err := buildNode(parent, name)
		if err != nil {
			// A single unreadable entry (e.g. removed mid-scan, permission
			// denied) doesn't fail the whole scan; it's simply omitted.
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// buildNodesParallel farms stat probing out across a bounded worker pool,
// preserving the original entry order in the result slice.
func buildNodesParallel(ctx context.Context, parent string, names []string) ([]*Node, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	results := make([]*Node, len(names))
	indices := make(chan int)
	done := make(chan struct{})

	var cancelled bool
	go func() {
		defer close(indices)
		for i := range names {
			select {
			case indices <- i:
			case <-ctx.Done():
				cancelled = true
				return
			}
		}
	}()

	workerDone := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer func() { workerDone <- struct{}{} }()
			for i := range indices {
				n, err := buildNode(parent, names[i])
				if err != nil {
					continue
				}
				results[i] = n
			}
		}()
	}

	go func() {
		for w := 0; w < workers; w++ {
			<-workerDone
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		<-done
		cancelled = true
	}

	if cancelled {
		return nil, ErrScanCancelled
	}

	nodes := make([]*Node, 0, len(names))
	for _, n := range results {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// buildNode constructs a single Node for the entry named name inside parent.
func buildNode(parent, name string) (*Node, error) {
	absolutePath := filepath.Join(parent, name)

	lstat, err := os.Lstat(absolutePath)
	if err != nil {
		return nil, err
	}

	extension := filepath.Ext(name)
	isSymlink := lstat.Mode()&os.ModeSymlink != 0

	n := &Node{
		Parent:       parent,
		RelativePath: name,
		AbsolutePath: absolutePath,
		Extension:    extension,
		IsDir:        lstat.IsDir() && !isSymlink,
		IsFile:       lstat.Mode().IsRegular(),
		IsSymlink:    isSymlink,
		IsReadonly:   lstat.Mode().Perm()&0200 == 0,
		MimeEssence:  mimeEssence(extension),
		Size:         uint64(lstat.Size()),
	}

	if !isSymlink {
		n.Canonical = CanonicalMeta{
			AbsolutePath: absolutePath,
			Extension:    extension,
			IsDir:        n.IsDir,
			IsFile:       n.IsFile,
			IsReadonly:   n.IsReadonly,
			MimeEssence:  n.MimeEssence,
			Size:         n.Size,
		}
		return n, nil
	}

	// Resolve the single-hop symlink target for Symlink metadata, and the
	// fully-resolved target for Canonical metadata. A broken symlink leaves
	// both nil/zero-valued except for the node's own (symlink) stat fields.
	directTarget, directErr := os.Readlink(absolutePath)
	if directErr == nil {
		var directAbs string
		if filepath.IsAbs(directTarget) {
			directAbs = directTarget
		} else {
			directAbs = filepath.Join(parent, directTarget)
		}
		if directInfo, statErr := os.Lstat(directAbs); statErr == nil {
			directExt := filepath.Ext(directAbs)
			n.Symlink = &SymlinkMeta{
				AbsolutePath: directAbs,
				Extension:    directExt,
				IsDir:        directInfo.IsDir(),
				IsFile:       directInfo.Mode().IsRegular(),
				IsReadonly:   directInfo.Mode().Perm()&0200 == 0,
				MimeEssence:  mimeEssence(directExt),
				Size:         uint64(directInfo.Size()),
			}
		}
	}

	if canonicalInfo, canonicalErr := os.Stat(absolutePath); canonicalErr == nil {
		canonicalPath := absolutePath
		if resolved, resolveErr := filepath.EvalSymlinks(absolutePath); resolveErr == nil {
			canonicalPath = resolved
		}
		canonicalExt := filepath.Ext(canonicalPath)
		n.Canonical = CanonicalMeta{
			AbsolutePath: canonicalPath,
			Extension:    canonicalExt,
			IsDir:        canonicalInfo.IsDir(),
			IsFile:       canonicalInfo.Mode().IsRegular(),
			IsReadonly:   canonicalInfo.Mode().Perm()&0200 == 0,
			MimeEssence:  mimeEssence(canonicalExt),
			Size:         uint64(canonicalInfo.Size()),
		}
	}
	// A broken symlink (canonicalErr != nil) leaves Canonical zero-valued;
	// Symlink being nil is the caller-visible signal that the link target
	// couldn't be resolved at all.

	return n, nil
}
