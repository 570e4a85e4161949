package app

import (
	"testing"
	"time"

	"github.com/drift-explorer/drift/internal/keymap"
	"github.com/drift-explorer/drift/internal/node"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

func newTestApp(t *testing.T, pwd string) *App {
	t.Helper()
	modes := keymap.Map{"default": {Name: "default"}}
	return New(pwd, "test", modes, "default", sortfilter.NewPipeline(nil, nil), nil)
}

func TestChangeDirectorySamePathIsNoop(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	before := len(a.History.Paths())
	if err := a.ChangeDirectory(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.History.Paths()) != before {
		t.Fatalf("expected no new history entry, got %d -> %d", before, len(a.History.Paths()))
	}
}

func TestChangeDirectoryRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	if err := a.ChangeDirectory(dir + "/does-not-exist"); err == nil {
		t.Fatal("expected an error for a nonexistent path")
	}
}

func TestApplyBufferDiscardsStaleParent(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	stale := &node.DirectoryBuffer{Parent: "/somewhere/else"}
	if a.ApplyBuffer(stale) {
		t.Fatal("expected stale buffer to be discarded")
	}
	if a.DirectoryBuffer != nil {
		t.Fatal("expected DirectoryBuffer to remain unset")
	}
}

func TestApplyBufferRestoresLastFocus(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	a.LastFocus[dir] = "b.txt"
	buffer := &node.DirectoryBuffer{
		Parent: dir,
		Nodes: []*node.Node{
			{RelativePath: "a.txt"},
			{RelativePath: "b.txt"},
			{RelativePath: "c.txt"},
		},
	}
	if !a.ApplyBuffer(buffer) {
		t.Fatal("expected buffer to apply")
	}
	if a.DirectoryBuffer.Focus != 1 {
		t.Fatalf("expected focus restored to index 1, got %d", a.DirectoryBuffer.Focus)
	}
}

func TestFocusNextWrapsAtEnd(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	a.DirectoryBuffer = &node.DirectoryBuffer{
		Parent: dir,
		Nodes:  []*node.Node{{RelativePath: "a"}, {RelativePath: "b"}},
		Focus:  1,
	}
	a.FocusNext()
	if a.DirectoryBuffer.Focus != 0 {
		t.Fatalf("expected wrap to 0, got %d", a.DirectoryBuffer.Focus)
	}
}

func TestFocusPreviousWrapsAtStart(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	a.DirectoryBuffer = &node.DirectoryBuffer{
		Parent: dir,
		Nodes:  []*node.Node{{RelativePath: "a"}, {RelativePath: "b"}},
		Focus:  0,
	}
	a.FocusPrevious()
	if a.DirectoryBuffer.Focus != 1 {
		t.Fatalf("expected wrap to last index, got %d", a.DirectoryBuffer.Focus)
	}
}

func TestSwitchModeUnknownIsNoop(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	if a.SwitchMode("does-not-exist") {
		t.Fatal("expected switching to an unknown mode to fail")
	}
	if a.ModeName != "default" {
		t.Fatalf("expected mode to remain 'default', got %q", a.ModeName)
	}
}

func TestAppendLogRecordsEntry(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	now := time.Now()
	a.AppendLog(now, LogLevelError, "x")
	if len(a.Logs) != 1 || a.Logs[0].Message != "x" || a.Logs[0].Level != LogLevelError {
		t.Fatalf("unexpected logs: %+v", a.Logs)
	}
}
