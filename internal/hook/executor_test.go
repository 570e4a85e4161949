package hook

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/drift-explorer/drift/internal/app"
	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/ipc"
	"github.com/drift-explorer/drift/internal/keymap"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

func newTestApp(t *testing.T, pwd string) *app.App {
	t.Helper()
	modes := keymap.Map{"default": {Name: "default"}}
	return app.New(pwd, "test", modes, "default", sortfilter.NewPipeline(nil, nil), nil)
}

func newTestSession(t *testing.T) *ipc.Session {
	t.Helper()
	session, err := ipc.NewSession(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("unable to create session: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestEnvironmentIncludesPipesAndAppState(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	a.InputBuffer.Set("hello")
	session := newTestSession(t)
	executor := NewExecutor(session, noopTerminal{}, map[string]string{"CUSTOM": "1"}, nil)

	env := executor.environment(a)
	want := map[string]bool{
		"XPLR_PWD=" + dir:         false,
		"XPLR_INPUT_BUFFER=hello": false,
		"XPLR_APP_VERSION=test":   false,
		"XPLR_FOCUS_INDEX=0":      false,
		"CUSTOM=1":                false,
	}
	for _, kv := range env {
		if _, ok := want[kv]; ok {
			want[kv] = true
		}
	}
	for kv, found := range want {
		if !found {
			t.Errorf("expected environment to contain %q", kv)
		}
	}
	foundSessionDir := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "XPLR_SESSION_PATH=") {
			foundSessionDir = true
		}
	}
	if !foundSessionDir {
		t.Error("expected XPLR_SESSION_PATH to be exported")
	}
}

func TestBashExecSilentlyRunsSuccessfully(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	session := newTestSession(t)
	executor := NewExecutor(session, noopTerminal{}, nil, nil)

	if err := executor.BashExecSilently(a, "exit 0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBashExecSilentlyClassifiesNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	session := newTestSession(t)
	executor := NewExecutor(session, noopTerminal{}, nil, nil)

	err := executor.BashExecSilently(a, "exit 3")
	if err == nil {
		t.Fatal("expected an error for non-zero exit")
	}
	hookErr, ok := err.(*direrrors.HookError)
	if !ok {
		t.Fatalf("expected *errors.HookError, got %T", err)
	}
	if hookErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", hookErr.ExitCode)
	}
}

func TestBashExecSilentlyClassifiesCommandNotFound(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, dir)
	session := newTestSession(t)
	executor := NewExecutor(session, noopTerminal{}, nil, nil)

	err := executor.BashExecSilently(a, "this-command-does-not-exist-anywhere")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "command not found") {
		t.Errorf("expected command-not-found classification, got: %v", err)
	}
}

func TestIsCommandNotFoundIgnoresUnrelatedExecError(t *testing.T) {
	cmd := exec.Command("bash", "-c", "exit 1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected exit 1 to produce an error")
	}
	if isCommandNotFound(err) {
		t.Error("a plain non-zero exit should not classify as command-not-found")
	}
}
