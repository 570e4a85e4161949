package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drift-explorer/drift/internal/message"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.InitialMode != "default" {
		t.Fatalf("expected initial_mode 'default', got %q", cfg.General.InitialMode)
	}
	if len(cfg.General.InitialSorters) != 2 {
		t.Fatalf("expected 2 initial sorters, got %d", len(cfg.General.InitialSorters))
	}
	if _, ok := cfg.Modes.Builtin["default"]; !ok {
		t.Fatal("expected a builtin 'default' mode")
	}
}

func TestLoadMergesUserConfigOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	contents := []byte("version: \"0.1.0\"\ngeneral:\n  log_level: debug\n")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.LogLevel != "debug" {
		t.Fatalf("expected user log_level to win, got %q", cfg.General.LogLevel)
	}
	// Defaults not touched by the user file should survive the merge.
	if cfg.General.InitialMode != "default" {
		t.Fatalf("expected default initial_mode to survive merge, got %q", cfg.General.InitialMode)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	contents := []byte("version: \"0.1.0\"\nnot_a_real_key: true\n")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown top-level key")
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	contents := []byte("version: \"9.9.0\"\n")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an incompatible version")
	}
}

func TestDefaultSortModeBindingProducesExpectedMessages(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sortMode, ok := cfg.Modes.Builtin["sort"]
	if !ok {
		t.Fatal("expected a builtin 'sort' mode")
	}
	action, ok := sortMode.KeyBindings.OnKey["r"]
	if !ok {
		t.Fatal("expected an 'r' binding in sort mode")
	}
	if len(action.Messages) == 0 || action.Messages[0].Kind != message.KindAddNodeSorter {
		t.Fatalf("expected first message to be AddNodeSorter, got %+v", action.Messages)
	}
}
