package sortfilter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/drift-explorer/drift/internal/node"
)

// FilterKind names one of the 32 filter kinds in the spec's closed cross
// product ({Relative|Absolute, CaseSensitive|CaseInsensitive} x {Is, IsNot,
// StartsWith, NotStartsWith, Contains, NotContains, EndsWith, NotEndsWith}),
// plus a 33rd Glob kind added by this implementation (see DESIGN.md Open
// Questions) using github.com/bmatcuk/doublestar for **-aware matching.
type FilterKind string

const (
	RelativePathDoesStartWith     FilterKind = "RelativePathDoesStartWith"
	IRelativePathDoesStartWith    FilterKind = "IRelativePathDoesStartWith"
	RelativePathDoesNotStartWith  FilterKind = "RelativePathDoesNotStartWith"
	IRelativePathDoesNotStartWith FilterKind = "IRelativePathDoesNotStartWith"
	RelativePathDoesContain       FilterKind = "RelativePathDoesContain"
	IRelativePathDoesContain      FilterKind = "IRelativePathDoesContain"
	RelativePathDoesNotContain    FilterKind = "RelativePathDoesNotContain"
	IRelativePathDoesNotContain   FilterKind = "IRelativePathDoesNotContain"
	RelativePathDoesEndWith       FilterKind = "RelativePathDoesEndWith"
	IRelativePathDoesEndWith      FilterKind = "IRelativePathDoesEndWith"
	RelativePathDoesNotEndWith    FilterKind = "RelativePathDoesNotEndWith"
	IRelativePathDoesNotEndWith   FilterKind = "IRelativePathDoesNotEndWith"
	RelativePathIs                FilterKind = "RelativePathIs"
	IRelativePathIs               FilterKind = "IRelativePathIs"
	RelativePathIsNot             FilterKind = "RelativePathIsNot"
	IRelativePathIsNot            FilterKind = "IRelativePathIsNot"
	AbsolutePathDoesStartWith     FilterKind = "AbsolutePathDoesStartWith"
	IAbsolutePathDoesStartWith    FilterKind = "IAbsolutePathDoesStartWith"
	AbsolutePathDoesNotStartWith  FilterKind = "AbsolutePathDoesNotStartWith"
	IAbsolutePathDoesNotStartWith FilterKind = "IAbsolutePathDoesNotStartWith"
	AbsolutePathDoesContain       FilterKind = "AbsolutePathDoesContain"
	IAbsolutePathDoesContain      FilterKind = "IAbsolutePathDoesContain"
	AbsolutePathDoesNotContain    FilterKind = "AbsolutePathDoesNotContain"
	IAbsolutePathDoesNotContain   FilterKind = "IAbsolutePathDoesNotContain"
	AbsolutePathDoesEndWith       FilterKind = "AbsolutePathDoesEndWith"
	IAbsolutePathDoesEndWith      FilterKind = "IAbsolutePathDoesEndWith"
	AbsolutePathDoesNotEndWith    FilterKind = "AbsolutePathDoesNotEndWith"
	IAbsolutePathDoesNotEndWith   FilterKind = "IAbsolutePathDoesNotEndWith"
	AbsolutePathIs                FilterKind = "AbsolutePathIs"
	IAbsolutePathIs               FilterKind = "IAbsolutePathIs"
	AbsolutePathIsNot             FilterKind = "AbsolutePathIsNot"
	IAbsolutePathIsNot            FilterKind = "IAbsolutePathIsNot"
	Glob                          FilterKind = "Glob"
)

// validFilterKinds is the closed set of recognized FilterKind values,
// checked by the wire parser so an unrecognized kind is rejected rather
// than silently compiled into a match-all predicate.
var validFilterKinds = map[FilterKind]bool{
	RelativePathDoesStartWith:     true,
	IRelativePathDoesStartWith:    true,
	RelativePathDoesNotStartWith:  true,
	IRelativePathDoesNotStartWith: true,
	RelativePathDoesContain:       true,
	IRelativePathDoesContain:      true,
	RelativePathDoesNotContain:    true,
	IRelativePathDoesNotContain:   true,
	RelativePathDoesEndWith:       true,
	IRelativePathDoesEndWith:      true,
	RelativePathDoesNotEndWith:    true,
	IRelativePathDoesNotEndWith:   true,
	RelativePathIs:                true,
	IRelativePathIs:               true,
	RelativePathIsNot:             true,
	IRelativePathIsNot:            true,
	AbsolutePathDoesStartWith:     true,
	IAbsolutePathDoesStartWith:    true,
	AbsolutePathDoesNotStartWith:  true,
	IAbsolutePathDoesNotStartWith: true,
	AbsolutePathDoesContain:       true,
	IAbsolutePathDoesContain:      true,
	AbsolutePathDoesNotContain:    true,
	IAbsolutePathDoesNotContain:   true,
	AbsolutePathDoesEndWith:       true,
	IAbsolutePathDoesEndWith:      true,
	AbsolutePathDoesNotEndWith:    true,
	IAbsolutePathDoesNotEndWith:   true,
	AbsolutePathIs:                true,
	IAbsolutePathIs:               true,
	AbsolutePathIsNot:             true,
	IAbsolutePathIsNot:            true,
	Glob:                          true,
}

// IsValidFilterKind reports whether kind is one of the recognized values.
func IsValidFilterKind(kind FilterKind) bool {
	return validFilterKinds[kind]
}

// NodeFilter is a single filter specification: a kind plus the input string
// it's compared against.
type NodeFilter struct {
	Kind  FilterKind `yaml:"kind"`
	Input string     `yaml:"input"`
}

// compiled is a pre-built predicate for a NodeFilter, built once and reused
// across every node in a scan rather than re-dispatching on Kind per node.
// Grounded on mutagen's pkg/synchronization/core/ignore package, which
// compiles declarative ignore specs into matcher closures for the same
// reason.
type compiled struct {
	spec  NodeFilter
	match func(*node.Node) bool
}

func compile(f NodeFilter) compiled {
	input := f.Input
	lowerInput := strings.ToLower(input)

	field := func(n *node.Node, absolute, caseFold bool) string {
		s := n.RelativePath
		if absolute {
			s = n.AbsolutePath
		}
		if caseFold {
			return strings.ToLower(s)
		}
		return s
	}

	var m func(*node.Node) bool

	switch f.Kind {
	case RelativePathIs:
		m = func(n *node.Node) bool { return field(n, false, false) == input }
	case IRelativePathIs:
		m = func(n *node.Node) bool { return field(n, false, true) == lowerInput }
	case RelativePathIsNot:
		m = func(n *node.Node) bool { return field(n, false, false) != input }
	case IRelativePathIsNot:
		m = func(n *node.Node) bool { return field(n, false, true) != lowerInput }
	case RelativePathDoesStartWith:
		m = func(n *node.Node) bool { return strings.HasPrefix(field(n, false, false), input) }
	case IRelativePathDoesStartWith:
		m = func(n *node.Node) bool { return strings.HasPrefix(field(n, false, true), lowerInput) }
	case RelativePathDoesNotStartWith:
		m = func(n *node.Node) bool { return !strings.HasPrefix(field(n, false, false), input) }
	case IRelativePathDoesNotStartWith:
		m = func(n *node.Node) bool { return !strings.HasPrefix(field(n, false, true), lowerInput) }
	case RelativePathDoesContain:
		m = func(n *node.Node) bool { return strings.Contains(field(n, false, false), input) }
	case IRelativePathDoesContain:
		m = func(n *node.Node) bool { return strings.Contains(field(n, false, true), lowerInput) }
	case RelativePathDoesNotContain:
		m = func(n *node.Node) bool { return !strings.Contains(field(n, false, false), input) }
	case IRelativePathDoesNotContain:
		m = func(n *node.Node) bool { return !strings.Contains(field(n, false, true), lowerInput) }
	case RelativePathDoesEndWith:
		m = func(n *node.Node) bool { return strings.HasSuffix(field(n, false, false), input) }
	case IRelativePathDoesEndWith:
		m = func(n *node.Node) bool { return strings.HasSuffix(field(n, false, true), lowerInput) }
	case RelativePathDoesNotEndWith:
		m = func(n *node.Node) bool { return !strings.HasSuffix(field(n, false, false), input) }
	case IRelativePathDoesNotEndWith:
		m = func(n *node.Node) bool { return !strings.HasSuffix(field(n, false, true), lowerInput) }
	case AbsolutePathIs:
		m = func(n *node.Node) bool { return field(n, true, false) == input }
	case IAbsolutePathIs:
		m = func(n *node.Node) bool { return field(n, true, true) == lowerInput }
	case AbsolutePathIsNot:
		m = func(n *node.Node) bool { return field(n, true, false) != input }
	case IAbsolutePathIsNot:
		m = func(n *node.Node) bool { return field(n, true, true) != lowerInput }
	case AbsolutePathDoesStartWith:
		m = func(n *node.Node) bool { return strings.HasPrefix(field(n, true, false), input) }
	case IAbsolutePathDoesStartWith:
		m = func(n *node.Node) bool { return strings.HasPrefix(field(n, true, true), lowerInput) }
	case AbsolutePathDoesNotStartWith:
		m = func(n *node.Node) bool { return !strings.HasPrefix(field(n, true, false), input) }
	case IAbsolutePathDoesNotStartWith:
		m = func(n *node.Node) bool { return !strings.HasPrefix(field(n, true, true), lowerInput) }
	case AbsolutePathDoesContain:
		m = func(n *node.Node) bool { return strings.Contains(field(n, true, false), input) }
	case IAbsolutePathDoesContain:
		m = func(n *node.Node) bool { return strings.Contains(field(n, true, true), lowerInput) }
	case AbsolutePathDoesNotContain:
		m = func(n *node.Node) bool { return !strings.Contains(field(n, true, false), input) }
	case IAbsolutePathDoesNotContain:
		m = func(n *node.Node) bool { return !strings.Contains(field(n, true, true), lowerInput) }
	case AbsolutePathDoesEndWith:
		m = func(n *node.Node) bool { return strings.HasSuffix(field(n, true, false), input) }
	case IAbsolutePathDoesEndWith:
		m = func(n *node.Node) bool { return strings.HasSuffix(field(n, true, true), lowerInput) }
	case AbsolutePathDoesNotEndWith:
		m = func(n *node.Node) bool { return !strings.HasSuffix(field(n, true, false), input) }
	case IAbsolutePathDoesNotEndWith:
		m = func(n *node.Node) bool { return !strings.HasSuffix(field(n, true, true), lowerInput) }
	case Glob:
		m = func(n *node.Node) bool {
			ok, err := doublestar.Match(input, n.RelativePath)
			return err == nil && ok
		}
	default:
		m = func(*node.Node) bool { return true }
	}

	return compiled{spec: f, match: m}
}
