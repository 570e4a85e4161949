// Package hook implements spec section 4.7: spawning user-configured shell
// hooks with the full XPLR_* IPC environment exported, and the scoped
// terminal-raw-mode handoff a foreground hook needs around it. Grounded on
// the teacher's pkg/process package for exit-code/command-not-found
// classification, generalized from "is this rsync/ssh exit" checks to "is
// this hook's shell exit."
package hook

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"

	"github.com/drift-explorer/drift/internal/app"
	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/ipc"
	"github.com/drift-explorer/drift/internal/logging"
)

// Executor spawns hooks (spec section 4.7's Call/BashExec/BashExecSilently)
// with the session's IPC environment and the app's current state exported
// as XPLR_* variables.
type Executor struct {
	session  *ipc.Session
	terminal Terminal
	logger   *logging.Logger

	// extraEnv holds key/value pairs sourced from a project-local .env
	// file (internal/config.LoadHookEnvFile), merged beneath the XPLR_*
	// exports so a hook can rely on both without reading the file itself.
	extraEnv map[string]string
}

// NewExecutor constructs an Executor bound to session for its IPC
// environment and terminal for scoped raw-mode handoff around foreground
// spawns.
func NewExecutor(session *ipc.Session, terminal Terminal, extraEnv map[string]string, logger *logging.Logger) *Executor {
	return &Executor{
		session:  session,
		terminal: terminal,
		extraEnv: extraEnv,
		logger:   logger,
	}
}

// environment builds the full XPLR_* export list for a, merging in the
// session's pipe paths and any .env-sourced overrides beneath them.
func (e *Executor) environment(a *app.App) []string {
	vars := make(map[string]string, len(e.extraEnv)+8)
	for k, v := range e.extraEnv {
		vars[k] = v
	}
	for k, v := range e.session.PipeEnvironment() {
		vars[k] = v
	}

	vars["XPLR_FOCUS_PATH"] = a.FocusedPath()
	vars["XPLR_PWD"] = a.Pwd
	vars["XPLR_INPUT_BUFFER"] = a.InputBuffer.String()
	vars["XPLR_APP_VERSION"] = a.Version
	if a.DirectoryBuffer != nil {
		vars["XPLR_FOCUS_INDEX"] = strconv.Itoa(a.DirectoryBuffer.Focus)
	} else {
		vars["XPLR_FOCUS_INDEX"] = "0"
	}

	env := os.Environ()
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return env
}

// Call spawns command with args as a foreground child process, suspending
// raw mode around it so the child's own line editing and signal handling
// work normally, and restoring raw mode unconditionally afterward.
func (e *Executor) Call(a *app.App, command string, args []string) error {
	restore, err := e.terminal.Suspend()
	defer restore()
	if err != nil {
		return &direrrors.HookError{Command: command, Cause: errors.Wrap(err, "unable to suspend raw mode")}
	}

	cmd := exec.Command(command, args...)
	cmd.Env = e.environment(a)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = a.Pwd

	if err := cmd.Run(); err != nil {
		return e.classify(command, err)
	}
	return nil
}

// BashExec spawns script under "bash -c", in the foreground with raw mode
// suspended the same as Call.
func (e *Executor) BashExec(a *app.App, script string) error {
	return e.Call(a, "bash", []string{"-c", script})
}

// BashExecSilently runs script under "bash -c" without suspending raw mode
// or connecting the child to the controlling terminal: stdout is discarded
// and stderr is captured (to classify a failure) rather than inherited, and
// it waits for the child to exit. It suits hooks that only need to emit messages
// over XPLR_PIPE_MSG_IN without taking over the screen.
func (e *Executor) BashExecSilently(a *app.App, script string) error {
	cmd := exec.Command("bash", "-c", script)
	cmd.Env = e.environment(a)
	cmd.Dir = a.Pwd

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitErr.Stderr = stderr.Bytes()
		}
		return e.classify("bash", err)
	}
	return nil
}

// classify turns a raw exec error into a HookError, using exit-code and
// stderr-fragment classification to give "command not found" a more
// specific cause than a bare non-zero exit.
func (e *Executor) classify(command string, err error) error {
	if isCommandNotFound(err) {
		return &direrrors.HookError{
			Command:  command,
			ExitCode: exitCodeForError(err),
			Cause:    errors.New("command not found"),
		}
	}
	return &direrrors.HookError{
		Command:  command,
		ExitCode: exitCodeForError(err),
	}
}
