// Package selection implements the insertion-ordered set of absolute paths
// described in spec section 3. Modeled on the map-plus-slice combination
// mutagen's daemon service registration uses to keep insertion order while
// still supporting O(1) membership checks (pkg/daemon/service.go).
package selection

// Set is an insertion-ordered set of absolute paths.
type Set struct {
	index map[string]int
	order []string
}

// New creates an empty selection set.
func New() *Set {
	return &Set{index: make(map[string]int)}
}

// Contains reports whether p is selected.
func (s *Set) Contains(p string) bool {
	_, ok := s.index[p]
	return ok
}

// Toggle adds p if absent, removes it if present.
func (s *Set) Toggle(p string) {
	if s.Contains(p) {
		s.remove(p)
		return
	}
	s.add(p)
}

func (s *Set) add(p string) {
	s.index[p] = len(s.order)
	s.order = append(s.order, p)
}

func (s *Set) remove(p string) {
	i, ok := s.index[p]
	if !ok {
		return
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, p)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

// ToggleAll toggles selection for every path in paths. If all are currently
// selected, they're all removed; otherwise every absent one is added. This
// implements ToggleSelectAll's "select everything if not all selected, else
// clear" semantics.
func (s *Set) ToggleAll(paths []string) {
	allSelected := len(paths) > 0
	for _, p := range paths {
		if !s.Contains(p) {
			allSelected = false
			break
		}
	}
	if allSelected {
		for _, p := range paths {
			s.remove(p)
		}
		return
	}
	for _, p := range paths {
		if !s.Contains(p) {
			s.add(p)
		}
	}
}

// Clear removes every selected path.
func (s *Set) Clear() {
	s.index = make(map[string]int)
	s.order = nil
}

// Paths returns the selected paths in insertion order.
func (s *Set) Paths() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of selected paths.
func (s *Set) Len() int {
	return len(s.order)
}
