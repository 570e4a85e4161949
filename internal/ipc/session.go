// Package ipc implements the named-pipe surface described in spec section
// 4.6: a private per-process session directory hosting one inbound and six
// outbound FIFOs, plus the non-blocking write/drain semantics spec section
// 5 requires of them. Grounded on the teacher's pkg/daemon (subpath/
// EndpointPath: a lazily-created directory hosting a single IPC endpoint)
// generalized from one UNIX socket to a directory of FIFOs, and on
// pkg/ssh/service.go's use of github.com/google/uuid to give each
// ephemeral endpoint a collision-free name.
package ipc

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/google/uuid"

	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/logging"
)

const (
	fifoMsgIn             = "msg_in"
	fifoSelectionOut      = "selection_out"
	fifoResultOut         = "result_out"
	fifoLogsOut           = "logs_out"
	fifoDirectoryNodesOut = "directory_nodes_out"
	fifoGlobalHelpOut     = "global_help_menu_out"
	fifoFocusOut          = "focus_out"
)

// Session owns a private session directory and its FIFOs for the lifetime
// of one run. Callers must call Close on exit; spec section 5 requires the
// session directory to be removed before the process terminates.
type Session struct {
	Dir string

	MsgIn *MessageReader

	SelectionOut      *ViewWriter
	ResultOut         *ViewWriter
	LogsOut           *ViewWriter
	DirectoryNodesOut *ViewWriter
	GlobalHelpOut     *ViewWriter
	FocusOut          *ViewWriter

	msgInPath string
}

// NewSession creates a session directory (mode 0700) under root, named
// uniquely with a random UUID, containing the seven FIFOs (mode 0600)
// listed in spec section 4.6.
func NewSession(root string, logger *logging.Logger) (*Session, error) {
	dir := filepath.Join(root, "drift-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &direrrors.IPCError{Pipe: dir, Cause: err}
	}

	names := []string{
		fifoMsgIn, fifoSelectionOut, fifoResultOut, fifoLogsOut,
		fifoDirectoryNodesOut, fifoGlobalHelpOut, fifoFocusOut,
	}
	paths := make(map[string]string, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := syscall.Mkfifo(path, 0600); err != nil {
			os.RemoveAll(dir)
			return nil, &direrrors.IPCError{Pipe: path, Cause: err}
		}
		paths[name] = path
	}

	msgIn, err := newMessageReader(paths[fifoMsgIn], logger)
	if err != nil {
		os.RemoveAll(dir)
		return nil, &direrrors.IPCError{Pipe: paths[fifoMsgIn], Cause: err}
	}

	return &Session{
		Dir:               dir,
		MsgIn:             msgIn,
		SelectionOut:      newViewWriter(paths[fifoSelectionOut]),
		ResultOut:         newViewWriter(paths[fifoResultOut]),
		LogsOut:           newViewWriter(paths[fifoLogsOut]),
		DirectoryNodesOut: newViewWriter(paths[fifoDirectoryNodesOut]),
		GlobalHelpOut:     newViewWriter(paths[fifoGlobalHelpOut]),
		FocusOut:          newViewWriter(paths[fifoFocusOut]),
		msgInPath:         paths[fifoMsgIn],
	}, nil
}

// PipeEnvironment returns the XPLR_PIPE_* and XPLR_SESSION_PATH variables
// spec section 4.7 requires every spawned hook to see.
func (s *Session) PipeEnvironment() map[string]string {
	return map[string]string{
		"XPLR_PIPE_MSG_IN":               s.msgInPath,
		"XPLR_PIPE_SELECTION_OUT":        s.SelectionOut.path,
		"XPLR_PIPE_RESULT_OUT":           s.ResultOut.path,
		"XPLR_PIPE_LOGS_OUT":             s.LogsOut.path,
		"XPLR_PIPE_DIRECTORY_NODES_OUT":  s.DirectoryNodesOut.path,
		"XPLR_PIPE_GLOBAL_HELP_MENU_OUT": s.GlobalHelpOut.path,
		"XPLR_PIPE_FOCUS_PATH":           s.FocusOut.path,
		"XPLR_SESSION_PATH":              s.Dir,
	}
}

// Close closes the inbound reader and removes the session directory,
// taking every FIFO in it with it.
func (s *Session) Close() error {
	s.MsgIn.Close()
	return os.RemoveAll(s.Dir)
}

// ViewWriter is a non-blocking writer for one outbound view FIFO. Each
// Write opens the pipe O_NONBLOCK and gives up immediately if no reader is
// attached, per spec section 5's "FIFO writes: non-blocking, drop on
// EAGAIN" — on Linux, opening the write end of a FIFO O_NONBLOCK with no
// reader present fails with ENXIO rather than blocking, which this
// surfaces the same way: silently skip this render.
type ViewWriter struct {
	path string
	mu   sync.Mutex
}

func newViewWriter(path string) *ViewWriter {
	return &ViewWriter{path: path}
}

// Write replaces the view's content for the next reader. It never blocks
// and never returns an error for "no reader attached", since that's the
// expected steady state whenever nothing is watching a given view.
func (w *ViewWriter) Write(content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := os.OpenFile(w.path, os.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		if os.IsNotExist(err) {
			// The FIFO itself is gone: re-create it so later renders can
			// reach a reader again, and report this render as lost.
			if mkErr := syscall.Mkfifo(w.path, 0600); mkErr != nil {
				return &direrrors.IPCError{Pipe: w.path, Cause: mkErr}
			}
			return &direrrors.IPCError{Pipe: w.path, Cause: err}
		}
		// No reader attached (ENXIO) or the pipe is momentarily busy
		// (EAGAIN): both are expected steady states, not failures.
		return nil
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

// MessageReader keeps the msg_in FIFO open for the lifetime of the session
// and forwards each line it reads on Lines. It opens the pipe O_RDWR so the
// open itself never blocks waiting for a writer and reads never see EOF
// when the last external writer disconnects (the reader holds its own
// write end open).
type MessageReader struct {
	file   *os.File
	lines  chan string
	logger *logging.Logger
}

func newMessageReader(path string, logger *logging.Logger) (*MessageReader, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	r := &MessageReader{
		file:   file,
		lines:  make(chan string, 1024),
		logger: logger,
	}
	go r.run()
	return r, nil
}

func (r *MessageReader) run() {
	scanner := bufio.NewScanner(r.file)
	for scanner.Scan() {
		line := scanner.Text()
		select {
		case r.lines <- line:
		default:
			if r.logger != nil {
				r.logger.Warnf("msg_in backlog full, dropping line: %s", line)
			}
		}
	}
}

// Lines delivers raw lines read from msg_in, one per inbound message.
func (r *MessageReader) Lines() <-chan string {
	return r.lines
}

// Close stops the reader and releases the underlying file descriptor.
func (r *MessageReader) Close() error {
	return r.file.Close()
}
