package sortfilter

import (
	"github.com/drift-explorer/drift/internal/node"
)

// SorterKind names one of the closed set of sort keys over a Node.
type SorterKind string

const (
	ByRelativePath          SorterKind = "ByRelativePath"
	ByIRelativePath         SorterKind = "ByIRelativePath"
	ByExtension             SorterKind = "ByExtension"
	ByIsDir                 SorterKind = "ByIsDir"
	ByIsFile                SorterKind = "ByIsFile"
	ByIsSymlink             SorterKind = "ByIsSymlink"
	ByIsBroken              SorterKind = "ByIsBroken"
	ByIsReadonly            SorterKind = "ByIsReadonly"
	ByMimeEssence           SorterKind = "ByMimeEssence"
	BySize                  SorterKind = "BySize"
	ByCanonicalAbsolutePath SorterKind = "ByCanonicalAbsolutePath"
	ByCanonicalExtension    SorterKind = "ByCanonicalExtension"
	ByCanonicalIsDir        SorterKind = "ByCanonicalIsDir"
	ByCanonicalIsFile       SorterKind = "ByCanonicalIsFile"
	ByCanonicalIsReadonly   SorterKind = "ByCanonicalIsReadonly"
	ByCanonicalMimeEssence  SorterKind = "ByCanonicalMimeEssence"
	ByCanonicalSize         SorterKind = "ByCanonicalSize"
	BySymlinkAbsolutePath   SorterKind = "BySymlinkAbsolutePath"
	BySymlinkExtension      SorterKind = "BySymlinkExtension"
	BySymlinkIsDir          SorterKind = "BySymlinkIsDir"
	BySymlinkIsFile         SorterKind = "BySymlinkIsFile"
	BySymlinkIsReadonly     SorterKind = "BySymlinkIsReadonly"
	BySymlinkMimeEssence    SorterKind = "BySymlinkMimeEssence"
	BySymlinkSize           SorterKind = "BySymlinkSize"
)

// NodeSorter is a single sort key plus its direction.
type NodeSorter struct {
	Kind    SorterKind `yaml:"kind"`
	Reverse bool       `yaml:"reverse"`
}

// validSorterKinds is the closed set of recognized SorterKind values.
var validSorterKinds = map[SorterKind]bool{
	ByRelativePath:          true,
	ByIRelativePath:         true,
	ByExtension:             true,
	ByIsDir:                 true,
	ByIsFile:                true,
	ByIsSymlink:             true,
	ByIsBroken:              true,
	ByIsReadonly:            true,
	ByMimeEssence:           true,
	BySize:                  true,
	ByCanonicalAbsolutePath: true,
	ByCanonicalExtension:    true,
	ByCanonicalIsDir:        true,
	ByCanonicalIsFile:       true,
	ByCanonicalIsReadonly:   true,
	ByCanonicalMimeEssence:  true,
	ByCanonicalSize:         true,
	BySymlinkAbsolutePath:   true,
	BySymlinkExtension:      true,
	BySymlinkIsDir:          true,
	BySymlinkIsFile:         true,
	BySymlinkIsReadonly:     true,
	BySymlinkMimeEssence:    true,
	BySymlinkSize:           true,
}

// IsValidSorterKind reports whether kind is one of the recognized values.
func IsValidSorterKind(kind SorterKind) bool {
	return validSorterKinds[kind]
}

// boolLess orders false before true, per the spec's boolean ordering
// invariant.
func boolLess(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func stringLess(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func uint64Less(a, b uint64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// compare applies a single sorter to two nodes, returning <0, 0, >0.
func (s NodeSorter) compare(a, b *node.Node) int {
	var result int
	switch s.Kind {
	case ByRelativePath:
		result = stringLess(a.RelativePath, b.RelativePath)
	case ByIRelativePath:
		result = naturalCompare(a.RelativePath, b.RelativePath, true)
	case ByExtension:
		result = stringLess(a.Extension, b.Extension)
	case ByIsDir:
		result = boolLess(a.IsDir, b.IsDir)
	case ByIsFile:
		result = boolLess(a.IsFile, b.IsFile)
	case ByIsSymlink:
		result = boolLess(a.IsSymlink, b.IsSymlink)
	case ByIsBroken:
		result = boolLess(a.IsSymlink && a.Symlink == nil, b.IsSymlink && b.Symlink == nil)
	case ByIsReadonly:
		result = boolLess(a.IsReadonly, b.IsReadonly)
	case ByMimeEssence:
		result = stringLess(a.MimeEssence, b.MimeEssence)
	case BySize:
		result = uint64Less(a.Size, b.Size)
	case ByCanonicalAbsolutePath:
		result = stringLess(a.Canonical.AbsolutePath, b.Canonical.AbsolutePath)
	case ByCanonicalExtension:
		result = stringLess(a.Canonical.Extension, b.Canonical.Extension)
	case ByCanonicalIsDir:
		result = boolLess(a.Canonical.IsDir, b.Canonical.IsDir)
	case ByCanonicalIsFile:
		result = boolLess(a.Canonical.IsFile, b.Canonical.IsFile)
	case ByCanonicalIsReadonly:
		result = boolLess(a.Canonical.IsReadonly, b.Canonical.IsReadonly)
	case ByCanonicalMimeEssence:
		result = stringLess(a.Canonical.MimeEssence, b.Canonical.MimeEssence)
	case ByCanonicalSize:
		result = uint64Less(a.Canonical.Size, b.Canonical.Size)
	case BySymlinkAbsolutePath:
		result = stringLess(symlinkPath(a), symlinkPath(b))
	case BySymlinkExtension:
		result = stringLess(symlinkExt(a), symlinkExt(b))
	case BySymlinkIsDir:
		result = boolLess(symlinkIsDir(a), symlinkIsDir(b))
	case BySymlinkIsFile:
		result = boolLess(symlinkIsFile(a), symlinkIsFile(b))
	case BySymlinkIsReadonly:
		result = boolLess(symlinkIsReadonly(a), symlinkIsReadonly(b))
	case BySymlinkMimeEssence:
		result = stringLess(symlinkMime(a), symlinkMime(b))
	case BySymlinkSize:
		result = uint64Less(symlinkSize(a), symlinkSize(b))
	default:
		result = 0
	}
	if s.Reverse {
		result = -result
	}
	return result
}

func symlinkPath(n *node.Node) string {
	if n.Symlink == nil {
		return ""
	}
	return n.Symlink.AbsolutePath
}

func symlinkExt(n *node.Node) string {
	if n.Symlink == nil {
		return ""
	}
	return n.Symlink.Extension
}

func symlinkIsDir(n *node.Node) bool {
	return n.Symlink != nil && n.Symlink.IsDir
}

func symlinkIsFile(n *node.Node) bool {
	return n.Symlink != nil && n.Symlink.IsFile
}

func symlinkIsReadonly(n *node.Node) bool {
	return n.Symlink != nil && n.Symlink.IsReadonly
}

func symlinkMime(n *node.Node) string {
	if n.Symlink == nil {
		return ""
	}
	return n.Symlink.MimeEssence
}

func symlinkSize(n *node.Node) uint64 {
	if n.Symlink == nil {
		return 0
	}
	return n.Symlink.Size
}
