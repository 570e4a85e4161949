package node

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("unable to write %s: %v", name, err)
	}
}

func TestScanListsEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt")
	writeFile(t, dir, "a.txt")
	writeFile(t, dir, "c.txt")

	buffer, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(buffer.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(buffer.Nodes))
	}
	if buffer.Total != 3 {
		t.Fatalf("expected Total 3, got %d", buffer.Total)
	}
	if buffer.Focus != 0 {
		t.Fatalf("expected initial focus 0, got %d", buffer.Focus)
	}
}

func TestScanNonDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, dir, "file.txt")

	if _, err := Scan(context.Background(), path); err == nil {
		t.Fatal("expected error scanning a non-directory")
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	buffer, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(buffer.Nodes) != 0 {
		t.Fatalf("expected 0 nodes, got %d", len(buffer.Nodes))
	}
	buffer.ClampFocus()
	if buffer.Focus != 0 {
		t.Fatalf("expected focus 0 for empty buffer, got %d", buffer.Focus)
	}
}

func TestScanSymlink(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(filepath.Join(dir, "target.txt"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	buffer, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	idx := buffer.IndexOfRelativePath("link.txt")
	if idx < 0 {
		t.Fatal("expected to find link.txt")
	}
	n := buffer.Nodes[idx]
	if !n.IsSymlink {
		t.Fatal("expected IsSymlink true")
	}
	if n.Symlink == nil {
		t.Fatal("expected resolvable symlink metadata")
	}
	if !n.Canonical.IsFile {
		t.Fatal("expected canonical target to be a file")
	}
}

func TestScanBrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "broken.txt")
	if err := os.Symlink(filepath.Join(dir, "does-not-exist"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	buffer, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	idx := buffer.IndexOfRelativePath("broken.txt")
	if idx < 0 {
		t.Fatal("expected to find broken.txt")
	}
	n := buffer.Nodes[idx]
	if !n.IsSymlink {
		t.Fatal("expected IsSymlink true")
	}
	if n.Symlink != nil {
		t.Fatal("expected nil Symlink metadata for a broken link")
	}
}

func TestScanParallelListsAllEntries(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < parallelThreshold+10; i++ {
		writeFile(t, dir, filepathName(i))
	}

	buffer, err := Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(buffer.Nodes) != parallelThreshold+10 {
		t.Fatalf("expected %d nodes, got %d", parallelThreshold+10, len(buffer.Nodes))
	}
}

func filepathName(i int) string {
	return "file" + strconv.Itoa(i) + ".txt"
}
