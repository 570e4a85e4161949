package message

import "testing"

func TestParseBareTag(t *testing.T) {
	m, err := Parse("Explore")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindExplore {
		t.Fatalf("expected KindExplore, got %v", m.Kind)
	}
}

func TestParseScalarPayload(t *testing.T) {
	m, err := Parse("SwitchMode: default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindSwitchMode || m.Text != "default" {
		t.Fatalf("unexpected message: %+v", m)
	}
}

func TestParseFocusPath(t *testing.T) {
	m, err := Parse("FocusPath: /tmp/x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindFocusPath || m.Path != "/tmp/x" {
		t.Fatalf("unexpected message: %+v", m)
	}
}

func TestParseLogSuccess(t *testing.T) {
	m, err := Parse("LogSuccess: done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindLogSuccess || m.Text != "done" {
		t.Fatalf("unexpected message: %+v", m)
	}
}

func TestParseBraceFilter(t *testing.T) {
	m, err := Parse("AddNodeFilter: {kind: IRelativePathDoesContain, input: foo}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != KindAddNodeFilter {
		t.Fatalf("expected KindAddNodeFilter, got %v", m.Kind)
	}
	if string(m.Filter.Kind) != "IRelativePathDoesContain" || m.Filter.Input != "foo" {
		t.Fatalf("unexpected filter: %+v", m.Filter)
	}
}

func TestParseUnknownTagIsMessageError(t *testing.T) {
	if _, err := Parse("TotallyMadeUp: x"); err == nil {
		t.Fatal("expected an error for an unknown tag")
	}
}

func TestParseBraceFilterUnknownKindIsMessageError(t *testing.T) {
	if _, err := Parse("AddNodeFilter: {kind: NotARealKind, input: foo}"); err == nil {
		t.Fatal("expected an error for an unknown filter kind")
	}
}

func TestParseFilterKindFromInputUnknownKindIsMessageError(t *testing.T) {
	if _, err := Parse("AddNodeFilterFromInput: NotARealKind"); err == nil {
		t.Fatal("expected an error for an unknown filter kind")
	}
}

func TestParseSorterKindUnknownKindIsMessageError(t *testing.T) {
	if _, err := Parse("RemoveNodeSorter: NotARealKind"); err == nil {
		t.Fatal("expected an error for an unknown sorter kind")
	}
}

func TestParseFocusByIndex(t *testing.T) {
	m, err := Parse("FocusByIndex: 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Index != 3 {
		t.Fatalf("expected index 3, got %d", m.Index)
	}
}

func TestParseFocusByIndexInvalid(t *testing.T) {
	if _, err := Parse("FocusByIndex: not-a-number"); err == nil {
		t.Fatal("expected an error for a non-numeric index")
	}
}
