// Package app defines the App aggregate (spec section 3): the single
// mutable state owned exclusively by the main loop. Grounded on the
// teacher's pkg/synchronization/session controller shape — a single
// struct mutated only through defined entry points, carrying its own
// sub-logger rather than reaching for a global.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/history"
	"github.com/drift-explorer/drift/internal/inputbuffer"
	"github.com/drift-explorer/drift/internal/keymap"
	"github.com/drift-explorer/drift/internal/logging"
	"github.com/drift-explorer/drift/internal/node"
	"github.com/drift-explorer/drift/internal/selection"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// LogLevel classifies an entry appended to App.Logs (spec section 4.4's
// LogInfo/LogSuccess/LogError).
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelSuccess LogLevel = "success"
	LogLevelError   LogLevel = "error"
)

// LogEntry is a single line retrievable through XPLR_PIPE_LOGS_OUT.
type LogEntry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Level     LogLevel  `yaml:"level"`
	Message   string    `yaml:"message"`
}

// App is the aggregate described in spec section 3. internal/interp
// mutates it through its exported methods, through the methods of its
// exported fields, and by writing the LastFocus map directly.
type App struct {
	*logging.Logger

	Version string
	Pwd     string

	DirectoryBuffer *node.DirectoryBuffer
	LastFocus       map[string]string

	Selection *selection.Set
	History   *history.Ring

	Modes       keymap.Map
	ModeName    string
	InputBuffer *inputbuffer.Buffer

	ExplorerConfig sortfilter.Pipeline

	Logs []LogEntry
}

// New constructs an App rooted at pwd, which must already be an absolute,
// accessible directory (callers resolve and validate before calling New;
// ChangeDirectory performs the same validation for subsequent navigation).
func New(pwd string, version string, modes keymap.Map, initialMode string, config sortfilter.Pipeline, logger *logging.Logger) *App {
	return &App{
		Logger:         logger,
		Version:        version,
		Pwd:            pwd,
		LastFocus:      make(map[string]string),
		Selection:      selection.New(),
		History:        history.New(pwd),
		Modes:          modes,
		ModeName:       initialMode,
		InputBuffer:    inputbuffer.New(),
		ExplorerConfig: config,
	}
}

// ResolveDirectory expands a leading "~" against HOME and cleans the
// result to an absolute path, per spec section 6's "HOME (resolving ~)".
func ResolveDirectory(path string) (string, error) {
	if path == "" {
		path = "."
	}
	if path == "~" || (len(path) > 1 && path[:2] == "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "unable to resolve HOME")
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve absolute path")
	}
	return absolute, nil
}

// validateDirectory confirms path exists and is a directory, per
// ChangeDirectory's validation requirement.
func validateDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &direrrors.ScanError{Path: path, Cause: err}
	}
	if !info.IsDir() {
		return &direrrors.ScanError{Path: path, Cause: errors.New("not a directory")}
	}
	return nil
}

// ChangeDirectory resolves and validates p, and if it differs from the
// current Pwd, records the visit in History and updates Pwd. It is a
// no-op (no history entry) if p resolves to the current Pwd, matching
// spec section 8's "ChangeDirectory(pwd) is a no-op" round-trip property.
// Callers are responsible for following this with an Explore request —
// App itself never schedules background work.
func (a *App) ChangeDirectory(p string) error {
	resolved, err := ResolveDirectory(p)
	if err != nil {
		return err
	}
	if err := validateDirectory(resolved); err != nil {
		return err
	}
	if resolved == a.Pwd {
		return nil
	}
	a.History.Visit(resolved)
	a.Pwd = resolved
	return nil
}

// ApplyBuffer atomically replaces DirectoryBuffer if buffer.Parent still
// equals the current Pwd (spec section 3's "stale results for a
// non-current pwd are discarded" rule), restoring focus from LastFocus
// and recording the new focus back into LastFocus.
func (a *App) ApplyBuffer(buffer *node.DirectoryBuffer) bool {
	if buffer.Parent != a.Pwd {
		return false
	}
	if last, ok := a.LastFocus[buffer.Parent]; ok {
		if idx := buffer.IndexOfRelativePath(last); idx >= 0 {
			buffer.Focus = idx
		}
	}
	buffer.ClampFocus()
	a.DirectoryBuffer = buffer
	a.recordFocus()
	return true
}

// recordFocus stores the currently focused node's relative path into
// LastFocus[Pwd], per spec section 3's "last_focus[pwd] is stored on
// every focus move".
func (a *App) recordFocus() {
	if a.DirectoryBuffer == nil {
		return
	}
	if n := a.DirectoryBuffer.FocusedNode(); n != nil {
		a.LastFocus[a.Pwd] = n.RelativePath
	}
}

// SetFocus sets the buffer's focus index directly (clamped) and records
// it into LastFocus.
func (a *App) SetFocus(index int) {
	if a.DirectoryBuffer == nil {
		return
	}
	a.DirectoryBuffer.Focus = index
	a.DirectoryBuffer.ClampFocus()
	a.recordFocus()
}

// FocusNext moves focus forward, wrapping to 0 past the last entry (spec
// section 8's boundary case).
func (a *App) FocusNext() {
	b := a.DirectoryBuffer
	if b == nil || len(b.Nodes) == 0 {
		return
	}
	b.Focus = (b.Focus + 1) % len(b.Nodes)
	a.recordFocus()
}

// FocusPrevious moves focus backward, wrapping to the last entry from
// index 0 (spec section 8's boundary case).
func (a *App) FocusPrevious() {
	b := a.DirectoryBuffer
	if b == nil || len(b.Nodes) == 0 {
		return
	}
	b.Focus = (b.Focus - 1 + len(b.Nodes)) % len(b.Nodes)
	a.recordFocus()
}

// FocusFirst moves focus to index 0.
func (a *App) FocusFirst() {
	if a.DirectoryBuffer == nil || len(a.DirectoryBuffer.Nodes) == 0 {
		return
	}
	a.SetFocus(0)
}

// FocusLast moves focus to the last index.
func (a *App) FocusLast() {
	if a.DirectoryBuffer == nil || len(a.DirectoryBuffer.Nodes) == 0 {
		return
	}
	a.SetFocus(len(a.DirectoryBuffer.Nodes) - 1)
}

// FocusAbsolutePath moves focus to the node with the given absolute path, if
// present in the current buffer, returning whether it was found.
func (a *App) FocusAbsolutePath(absolutePath string) bool {
	if a.DirectoryBuffer == nil {
		return false
	}
	idx := a.DirectoryBuffer.IndexOfAbsolutePath(absolutePath)
	if idx < 0 {
		return false
	}
	a.SetFocus(idx)
	return true
}

// FocusFileName moves focus to the node with the given relative path (its
// file name), if present in the current buffer, returning whether it was
// found.
func (a *App) FocusFileName(name string) bool {
	if a.DirectoryBuffer == nil {
		return false
	}
	idx := a.DirectoryBuffer.IndexOfFileName(name)
	if idx < 0 {
		return false
	}
	a.SetFocus(idx)
	return true
}

// FocusedPath returns the absolute path of the focused node, or the
// current Pwd if the buffer is empty or absent.
func (a *App) FocusedPath() string {
	if a.DirectoryBuffer != nil {
		if n := a.DirectoryBuffer.FocusedNode(); n != nil {
			return n.AbsolutePath
		}
	}
	return a.Pwd
}

// State is the serialized snapshot PrintAppStateAndQuit writes (spec section
// 4.4: "write the serialized app state"), encoded as YAML to match this
// core's other wire formats (internal/config, internal/message).
type State struct {
	Version     string                  `yaml:"version"`
	Pwd         string                  `yaml:"pwd"`
	Mode        string                  `yaml:"mode"`
	InputBuffer string                  `yaml:"input_buffer"`
	FocusIndex  int                     `yaml:"focus_index"`
	FocusedPath string                  `yaml:"focused_path"`
	Selection   []string                `yaml:"selection"`
	Filters     []sortfilter.NodeFilter `yaml:"filters"`
	Sorters     []sortfilter.NodeSorter `yaml:"sorters"`
	Logs        []LogEntry              `yaml:"logs"`
}

// SerializeState builds the State snapshot and encodes it as YAML.
func (a *App) SerializeState() string {
	focusIndex := 0
	if a.DirectoryBuffer != nil {
		focusIndex = a.DirectoryBuffer.Focus
	}

	state := State{
		Version:     a.Version,
		Pwd:         a.Pwd,
		Mode:        a.ModeName,
		InputBuffer: a.InputBuffer.String(),
		FocusIndex:  focusIndex,
		FocusedPath: a.FocusedPath(),
		Selection:   a.Selection.Paths(),
		Filters:     a.ExplorerConfig.Filters(),
		Sorters:     a.ExplorerConfig.Sorters(),
		Logs:        a.Logs,
	}

	encoded, err := yaml.Marshal(state)
	if err != nil {
		// State contains no cyclic or unmarshalable fields, so this is
		// unreachable in practice; fall back to the focused path rather
		// than panicking on a PrintAppStateAndQuit request.
		return a.FocusedPath()
	}
	return string(encoded)
}

// AppendLog appends a timestamped entry (spec section 4.4's LogInfo/
// LogSuccess/LogError handling). The timestamp is supplied by the caller
// (the interp package) since this package performs no wall-clock reads of
// its own, keeping App deterministic for testing.
func (a *App) AppendLog(timestamp time.Time, level LogLevel, message string) {
	a.Logs = append(a.Logs, LogEntry{Timestamp: timestamp, Level: level, Message: message})
}

// CurrentMode returns the active Mode, and whether ModeName resolved to a
// known mode.
func (a *App) CurrentMode() (keymap.Mode, bool) {
	mode, ok := a.Modes[a.ModeName]
	return mode, ok
}

// SwitchMode changes the active mode if name is known, returning whether
// it succeeded. Per spec section 4.4, an unknown mode is a no-op (the
// caller records an error log entry); switching mode never itself mutates the input
// buffer.
func (a *App) SwitchMode(name string) bool {
	if _, ok := a.Modes[name]; !ok {
		return false
	}
	a.ModeName = name
	return true
}
