package sortfilter

import (
	"sort"

	"github.com/drift-explorer/drift/internal/node"
)

// Pipeline is the explorer's current filters (ordered, deduplicated by
// kind) and sorters (ordered sequence), applied to a scan's raw node list as
// filters (conjunction) then sort (stable, lexicographic by successive
// sorters).
type Pipeline struct {
	filters []NodeFilter
	sorters []NodeSorter

	// initialFilters/initialSorters are snapshots taken at construction
	// time, restored by ResetFilters/ResetSorters.
	initialFilters []NodeFilter
	initialSorters []NodeSorter
}

// NewPipeline constructs a Pipeline seeded with the given initial filters and
// sorters, as loaded from configuration.
func NewPipeline(filters []NodeFilter, sorters []NodeSorter) Pipeline {
	p := Pipeline{}
	for _, f := range filters {
		p.AddFilter(f)
	}
	for _, s := range sorters {
		p.AddSorter(s)
	}
	p.initialFilters = append([]NodeFilter(nil), p.filters...)
	p.initialSorters = append([]NodeSorter(nil), p.sorters...)
	return p
}

// Filters returns the current filter list in application order.
func (p *Pipeline) Filters() []NodeFilter {
	return append([]NodeFilter(nil), p.filters...)
}

// Sorters returns the current sorter list in application order.
func (p *Pipeline) Sorters() []NodeSorter {
	return append([]NodeSorter(nil), p.sorters...)
}

// AddFilter inserts f, doing nothing if a filter of the same kind is
// already present, whatever its input (dedup-by-kind per the spec's NodeFilter description:
// an ordered set deduplicated by kind).
func (p *Pipeline) AddFilter(f NodeFilter) {
	for _, existing := range p.filters {
		if existing.Kind == f.Kind {
			return
		}
	}
	p.filters = append(p.filters, f)
}

// RemoveFilter removes the filter equal to f, if present.
func (p *Pipeline) RemoveFilter(f NodeFilter) {
	for i, existing := range p.filters {
		if existing == f {
			p.filters = append(p.filters[:i], p.filters[i+1:]...)
			return
		}
	}
}

// RemoveLastFilter removes the most recently added filter, if any.
func (p *Pipeline) RemoveLastFilter() {
	if len(p.filters) == 0 {
		return
	}
	p.filters = p.filters[:len(p.filters)-1]
}

// ToggleFilter inserts f if absent, removes it if present.
func (p *Pipeline) ToggleFilter(f NodeFilter) {
	for i, existing := range p.filters {
		if existing == f {
			p.filters = append(p.filters[:i], p.filters[i+1:]...)
			return
		}
	}
	p.AddFilter(f)
}

// ClearFilters removes every filter.
func (p *Pipeline) ClearFilters() {
	p.filters = nil
}

// ResetFilters restores the filter set to what NewPipeline was constructed
// with.
func (p *Pipeline) ResetFilters() {
	p.filters = append([]NodeFilter(nil), p.initialFilters...)
}

// AddSorter appends s, replacing any existing sorter of the same kind
// (duplicate kinds with different reverse flags are disallowed per
// DESIGN.md's Open Question resolution).
func (p *Pipeline) AddSorter(s NodeSorter) {
	for i, existing := range p.sorters {
		if existing.Kind == s.Kind {
			p.sorters[i] = s
			return
		}
	}
	p.sorters = append(p.sorters, s)
}

// RemoveSorter removes the sorter with the given kind, if present.
func (p *Pipeline) RemoveSorter(kind SorterKind) {
	for i, existing := range p.sorters {
		if existing.Kind == kind {
			p.sorters = append(p.sorters[:i], p.sorters[i+1:]...)
			return
		}
	}
}

// RemoveLastSorter removes the most recently added sorter, if any.
func (p *Pipeline) RemoveLastSorter() {
	if len(p.sorters) == 0 {
		return
	}
	p.sorters = p.sorters[:len(p.sorters)-1]
}

// ReverseSorters flips the Reverse flag of every sorter. Applied twice, this
// is the identity operation.
func (p *Pipeline) ReverseSorters() {
	for i := range p.sorters {
		p.sorters[i].Reverse = !p.sorters[i].Reverse
	}
}

// ClearSorters removes every sorter.
func (p *Pipeline) ClearSorters() {
	p.sorters = nil
}

// ResetSorters restores the sorter set to what NewPipeline was constructed
// with.
func (p *Pipeline) ResetSorters() {
	p.sorters = append([]NodeSorter(nil), p.initialSorters...)
}

// Apply filters then stably sorts nodes according to the pipeline's current
// configuration.
func (p *Pipeline) Apply(nodes []*node.Node) []*node.Node {
	filtered := nodes
	if len(p.filters) > 0 {
		compiledFilters := make([]compiled, len(p.filters))
		for i, f := range p.filters {
			compiledFilters[i] = compile(f)
		}
		filtered = make([]*node.Node, 0, len(nodes))
		for _, n := range nodes {
			keep := true
			for _, cf := range compiledFilters {
				if !cf.match(n) {
					keep = false
					break
				}
			}
			if keep {
				filtered = append(filtered, n)
			}
		}
	}

	if len(p.sorters) == 0 {
		return filtered
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		for _, s := range p.sorters {
			c := s.compare(filtered[i], filtered[j])
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	return filtered
}
