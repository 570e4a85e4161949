package sortfilter

import (
	"testing"

	"github.com/drift-explorer/drift/internal/node"
)

func makeNodes(names ...string) []*node.Node {
	nodes := make([]*node.Node, len(names))
	for i, name := range names {
		nodes[i] = &node.Node{RelativePath: name, AbsolutePath: "/tmp/" + name}
	}
	return nodes
}

func relativePaths(nodes []*node.Node) []string {
	result := make([]string, len(nodes))
	for i, n := range nodes {
		result[i] = n.RelativePath
	}
	return result
}

func assertOrder(t *testing.T, got []*node.Node, want ...string) {
	t.Helper()
	gotNames := relativePaths(got)
	if len(gotNames) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotNames)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotNames)
		}
	}
}

func TestNaturalOrderNumericRuns(t *testing.T) {
	p := NewPipeline(nil, []NodeSorter{{Kind: ByIRelativePath}})
	nodes := makeNodes("file10", "file2", "file1")
	assertOrder(t, p.Apply(nodes), "file1", "file2", "file10")
}

func TestNaturalOrderCaseInsensitive(t *testing.T) {
	p := NewPipeline(nil, []NodeSorter{{Kind: ByIRelativePath}})
	nodes := makeNodes("B", "a")
	assertOrder(t, p.Apply(nodes), "a", "B")
}

func TestReverseSortersTwiceIsIdentity(t *testing.T) {
	p := NewPipeline(nil, []NodeSorter{{Kind: ByRelativePath}})
	original := p.Sorters()
	p.ReverseSorters()
	p.ReverseSorters()
	after := p.Sorters()
	if len(original) != len(after) {
		t.Fatalf("sorter count changed")
	}
	for i := range original {
		if original[i] != after[i] {
			t.Fatalf("expected identity after double reverse, got %v vs %v", original, after)
		}
	}
}

func TestAddSorterReplacesSameKind(t *testing.T) {
	p := NewPipeline(nil, nil)
	p.AddSorter(NodeSorter{Kind: ByRelativePath, Reverse: false})
	p.AddSorter(NodeSorter{Kind: ByRelativePath, Reverse: true})
	sorters := p.Sorters()
	if len(sorters) != 1 {
		t.Fatalf("expected exactly one sorter of kind ByRelativePath, got %d", len(sorters))
	}
	if !sorters[0].Reverse {
		t.Fatal("expected the later AddSorter call to win")
	}
}

func TestAddFilterThenRemoveFilterIsIdentity(t *testing.T) {
	p := NewPipeline(nil, nil)
	before := p.Filters()

	f := NodeFilter{Kind: IRelativePathDoesContain, Input: "a"}
	p.AddFilter(f)
	p.RemoveFilter(f)

	after := p.Filters()
	if len(before) != len(after) {
		t.Fatalf("expected filter set to return to pre-state, got %v", after)
	}
}

func TestToggleFilterTwiceIsIdentity(t *testing.T) {
	p := NewPipeline(nil, nil)
	f := NodeFilter{Kind: IRelativePathDoesContain, Input: "a"}
	p.ToggleFilter(f)
	if len(p.Filters()) != 1 {
		t.Fatal("expected filter to be present after first toggle")
	}
	p.ToggleFilter(f)
	if len(p.Filters()) != 0 {
		t.Fatal("expected filter to be absent after second toggle")
	}
}

func TestFilterCaseInsensitiveContains(t *testing.T) {
	p := NewPipeline([]NodeFilter{{Kind: IRelativePathDoesContain, Input: "a."}}, nil)
	nodes := makeNodes("apple.txt", "banana.md", "cherry.go")
	got := relativePaths(p.Apply(nodes))
	if len(got) != 1 || got[0] != "banana.md" {
		t.Fatalf("expected only banana.md to match, got %v", got)
	}
}

func TestGlobFilter(t *testing.T) {
	p := NewPipeline([]NodeFilter{{Kind: Glob, Input: "*.go"}}, nil)
	nodes := makeNodes("main.go", "main.rs", "util.go")
	got := relativePaths(p.Apply(nodes))
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}
}

func TestCompositeSortInitialScenario(t *testing.T) {
	// Scenario 1 from spec section 8: ByCanonicalIsDir desc, ByIRelativePath asc.
	p := NewPipeline(nil, []NodeSorter{
		{Kind: ByCanonicalIsDir, Reverse: true},
		{Kind: ByIRelativePath, Reverse: false},
	})
	nodes := []*node.Node{
		{RelativePath: "b.txt", Canonical: node.CanonicalMeta{IsDir: false}},
		{RelativePath: "a.txt", Canonical: node.CanonicalMeta{IsDir: false}},
		{RelativePath: "c.txt", Canonical: node.CanonicalMeta{IsDir: false}},
	}
	assertOrder(t, p.Apply(nodes), "a.txt", "b.txt", "c.txt")
}
