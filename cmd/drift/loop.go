package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/drift-explorer/drift/internal/app"
	"github.com/drift-explorer/drift/internal/cmdutil"
	"github.com/drift-explorer/drift/internal/config"
	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/explorer"
	"github.com/drift-explorer/drift/internal/hook"
	"github.com/drift-explorer/drift/internal/interp"
	"github.com/drift-explorer/drift/internal/ipc"
	"github.com/drift-explorer/drift/internal/keymap"
	"github.com/drift-explorer/drift/internal/logging"
	"github.com/drift-explorer/drift/internal/message"
)

// coreVersion is printed by --version and exported to hooks as
// XPLR_APP_VERSION.
const coreVersion = config.CoreVersion

// sessionRoot returns the directory hosting the per-run IPC session
// directory: $XDG_RUNTIME_DIR when set, the system temp directory
// otherwise, per spec section 7's environment variable list.
func sessionRoot() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// run loads configuration, launches the TUI rooted at path, and drives the
// main loop until a lifecycle effect (Quit/Terminate/PrintResult/
// PrintAppState) terminates the process via os.Exit. It returns an error
// only for unrecoverable startup failures (spec section 7's exit code 2).
func run(path string) error {
	cfg, err := config.Load(rootConfiguration.configPath)
	if err != nil {
		return err
	}

	pwd, err := app.ResolveDirectory(path)
	if err != nil {
		return &direrrors.ConfigError{Cause: errors.Wrap(err, "unable to resolve starting directory")}
	}

	level, _ := logging.NameToLevel(cfg.General.LogLevel)
	logger := logging.NewLogger(level, os.Stderr)

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(pwd)
		os.Exit(0)
	}

	extraEnv, err := config.LoadHookEnvFile(".env")
	if err != nil {
		logger.Warn(err)
		extraEnv = map[string]string{}
	}

	modes := cfg.ResolvedModes()
	explorerConfig := newExplorerConfig(cfg)

	a := app.New(pwd, coreVersion, modes, cfg.General.InitialMode, explorerConfig, logger.Sublogger("app"))

	ctx, cancel := context.WithCancel(context.Background())

	svc := explorer.NewService(ctx, logger.Sublogger("explorer"))

	session, err := ipc.NewSession(sessionRoot(), logger.Sublogger("ipc"))
	if err != nil {
		cancel()
		return err
	}

	terminal := hook.NewTerminal()
	restoreRaw, err := terminal.EnableRawMode()
	if err != nil {
		logger.Warn(errors.Wrap(err, "unable to enable raw terminal mode"))
	}

	executor := hook.NewExecutor(session, terminal, extraEnv, logger.Sublogger("hook"))

	keys := newKeyReader(os.Stdin)
	keyEvents := make(chan keyEvent)
	go pumpKeys(keys, keyEvents)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, cmdutil.TerminationSignals...)

	svc.SetDirectory(a.Pwd, a.ExplorerConfig, a.LastFocus[a.Pwd])
	ipc.Render(session, a)

	l := &loop{
		app:      a,
		svc:      svc,
		session:  session,
		executor: executor,
		logger:   logger.Sublogger("main"),
		cleanup: func() {
			restoreRaw()
			svc.Stop()
			session.Close()
			cancel()
		},
	}
	l.run(keyEvents, signals)

	// l.run only returns via os.Exit; this is unreachable but satisfies the
	// compiler's expectation of a return.
	return nil
}

// keyEvent carries either a parsed key press or a read error (e.g. stdin
// closed), so the main select loop can detect the keyboard source dying.
type keyEvent struct {
	key string
	err error
}

func pumpKeys(k *keyReader, out chan<- keyEvent) {
	for {
		key, err := k.Next()
		if err != nil {
			out <- keyEvent{err: err}
			return
		}
		out <- keyEvent{key: key.String()}
	}
}

// loop owns the single-threaded main loop: it never mutates app.App from
// more than one goroutine, per spec section 3's "App is the single mutable
// state owned exclusively by the main loop."
type loop struct {
	app      *app.App
	svc      *explorer.Service
	session  *ipc.Session
	executor *hook.Executor
	logger   *logging.Logger

	// cleanup restores the terminal, stops the scanner/watcher, removes
	// the IPC session directory, and cancels the background context. It
	// runs before every os.Exit this loop performs, since deferred calls
	// in run would never fire otherwise.
	cleanup func()
}

func (l *loop) run(keyEvents <-chan keyEvent, signals <-chan os.Signal) {
	for {
		select {
		case <-signals:
			l.dispatch([]message.Message{{Kind: message.KindTerminate}})

		case result := <-l.svc.Results():
			if result.Err != nil {
				l.logger.Warn(result.Err)
				continue
			}
			l.app.ApplyBuffer(result.Buffer)
			ipc.Render(l.session, l.app)

		case line := <-l.session.MsgIn.Lines():
			msg, err := message.Parse(line)
			if err != nil {
				l.logger.Warn(err)
				continue
			}
			l.dispatch([]message.Message{msg})

		case ev := <-keyEvents:
			if ev.err != nil {
				l.dispatch([]message.Message{{Kind: message.KindTerminate}})
				continue
			}
			l.handleKey(ev.key)
		}
	}
}

func (l *loop) handleKey(key string) {
	mode, ok := l.app.CurrentMode()
	if !ok {
		l.logger.Warnf("no key bindings for unknown mode %q", l.app.ModeName)
		return
	}

	parsed, err := keymap.ParseKey(key)
	if err != nil {
		l.logger.Warn(err)
		return
	}

	resolved, action := keymap.Lookup(mode, parsed)
	if action == nil {
		return
	}

	msgs := make([]message.Message, len(action.Messages))
	copy(msgs, action.Messages)
	for i := range msgs {
		if msgs[i].Kind == message.KindBufferInputFromKey && msgs[i].Key == "" {
			msgs[i].Key = resolved.String()
		}
	}
	l.dispatch(msgs)
}

func (l *loop) dispatch(msgs []message.Message) {
	effects := interp.Dispatch(l.app, msgs)
	for _, effect := range effects {
		l.applyEffect(effect)
	}
	ipc.Render(l.session, l.app)
}

func (l *loop) applyEffect(effect interp.Effect) {
	switch effect.Kind {
	case interp.EffectExplore:
		l.svc.SetDirectory(l.app.Pwd, l.app.ExplorerConfig, l.app.LastFocus[l.app.Pwd])
	case interp.EffectRefresh:
		// A render pulse only: dispatch already re-renders every pipe after
		// applying effects, so Refresh triggers no rescan of its own.
	case interp.EffectClearScreen:
		fmt.Print("\x1b[2J\x1b[H")
	case interp.EffectCall:
		if err := l.executor.Call(l.app, effect.Command, effect.Args); err != nil {
			l.logger.Warn(err)
		}
	case interp.EffectBashExec:
		if err := l.executor.BashExec(l.app, effect.Script); err != nil {
			l.logger.Warn(err)
		}
	case interp.EffectBashExecSilently:
		if err := l.executor.BashExecSilently(l.app, effect.Script); err != nil {
			l.logger.Warn(err)
		}
	case interp.EffectQuit, interp.EffectPrintResult:
		ipc.Render(l.session, l.app)
		fmt.Println(effect.Output)
		l.cleanup()
		os.Exit(0)
	case interp.EffectPrintAppState:
		ipc.Render(l.session, l.app)
		fmt.Println(effect.Output)
		l.cleanup()
		os.Exit(0)
	case interp.EffectTerminate:
		l.cleanup()
		os.Exit(1)
	}
}
