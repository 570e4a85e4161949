// Package interp folds a stream of message.Message values into App state
// mutations and a list of side-effect descriptors (spec section 4.4).
// Grounded on the teacher's pkg/rpc/pkg/multiplexing idiom of a single
// dispatch loop draining discrete tagged units, generalized here to a
// FIFO message queue with an internal requeue bounded per tick.
package interp

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/drift-explorer/drift/internal/app"
	"github.com/drift-explorer/drift/internal/message"
	"github.com/drift-explorer/drift/internal/node"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// newFilterFromInput builds a NodeFilter of the given kind with the
// current input buffer as its comparison input, for
// AddNodeFilterFromInput/RemoveNodeFilterFromInput (spec section 4.2).
func newFilterFromInput(kind sortfilter.FilterKind, input string) sortfilter.NodeFilter {
	return sortfilter.NodeFilter{Kind: kind, Input: input}
}

// perTickCap bounds how many messages (external plus self-enqueued) a
// single Dispatch call will process, per spec section 5's "bounded by a
// per-tick cap of 1024 to prevent starvation".
const perTickCap = 1024

// EffectKind classifies a side-effect descriptor the caller must act on:
// scheduling work the interpreter itself cannot perform (spawning a
// process, rescanning a directory, exiting the program).
type EffectKind string

const (
	EffectExplore           EffectKind = "Explore"
	EffectRefresh           EffectKind = "Refresh"
	EffectClearScreen       EffectKind = "ClearScreen"
	EffectQuit              EffectKind = "Quit"
	EffectTerminate         EffectKind = "Terminate"
	EffectPrintResult       EffectKind = "PrintResult"
	EffectPrintAppState     EffectKind = "PrintAppState"
	EffectCall              EffectKind = "Call"
	EffectBashExec          EffectKind = "BashExec"
	EffectBashExecSilently  EffectKind = "BashExecSilently"
)

// Effect is a side-effect descriptor produced while folding messages.
// Dispatch never performs I/O itself; the caller (the main loop) is
// responsible for acting on each Effect in order.
type Effect struct {
	Kind    EffectKind
	Command string
	Args    []string
	Script  string
	Output  string
}

// nowFunc is overridable in tests so log timestamps are deterministic.
var nowFunc = time.Now

// Dispatch drains the given messages in FIFO order against a, including
// any messages that handling one message enqueues, up to perTickCap total.
// It returns the side-effect descriptors produced, in the order they were
// generated.
func Dispatch(a *app.App, initial []message.Message) []Effect {
	queue := append([]message.Message(nil), initial...)
	var effects []Effect
	processed := 0

	for len(queue) > 0 {
		if processed >= perTickCap {
			a.Warnf("message queue exceeded per-tick cap of %d; remaining messages dropped this tick", perTickCap)
			break
		}
		msg := queue[0]
		queue = queue[1:]
		processed++

		more, effect := apply(a, msg)
		queue = append(queue, more...)
		if effect != nil {
			effects = append(effects, *effect)
		}
	}

	return effects
}

// apply handles a single message, returning any follow-on messages it
// enqueues and at most one side-effect descriptor.
func apply(a *app.App, msg message.Message) ([]message.Message, *Effect) {
	switch msg.Kind {

	// Focus.
	case message.KindFocusFirst:
		a.FocusFirst()
	case message.KindFocusLast:
		a.FocusLast()
	case message.KindFocusNext:
		a.FocusNext()
	case message.KindFocusPrevious:
		a.FocusPrevious()
	case message.KindFocusNextByRelativeIndexFromInput:
		if n, ok := parseNonNegativeInt(a.InputBuffer.String()); ok {
			applyRelativeFocus(a, n)
		} else {
			logParseFailure(a, msg.Kind, a.InputBuffer.String())
		}
	case message.KindFocusPreviousByRelativeIndexFromInput:
		if n, ok := parseNonNegativeInt(a.InputBuffer.String()); ok {
			applyRelativeFocus(a, -n)
		} else {
			logParseFailure(a, msg.Kind, a.InputBuffer.String())
		}
	case message.KindFocusPath:
		if a.DirectoryBuffer != nil {
			a.FocusAbsolutePath(msg.Path)
		}
	case message.KindFocusByIndex:
		applyFocusByIndex(a, msg.Index)
	case message.KindFocusByIndexFromInput:
		if n, ok := parseNonNegativeInt(a.InputBuffer.String()); ok {
			applyFocusByIndex(a, n)
		} else {
			logParseFailure(a, msg.Kind, a.InputBuffer.String())
		}
	case message.KindFocusByFileName:
		if a.DirectoryBuffer != nil {
			a.FocusFileName(msg.FileName)
		}

	// Navigation.
	case message.KindChangeDirectory:
		before := a.Pwd
		if err := a.ChangeDirectory(msg.Path); err != nil {
			appendLog(a, app.LogLevelError, err.Error())
		} else if a.Pwd != before {
			return nil, exploreEffect()
		}
	case message.KindEnter:
		if n := focusedNode(a); n != nil && n.IsDir {
			if err := a.ChangeDirectory(n.AbsolutePath); err != nil {
				appendLog(a, app.LogLevelError, err.Error())
			} else {
				return nil, exploreEffect()
			}
		}
	case message.KindBack:
		parent := filepath.Dir(a.Pwd)
		if parent != a.Pwd {
			if err := a.ChangeDirectory(parent); err != nil {
				appendLog(a, app.LogLevelError, err.Error())
			} else {
				return nil, exploreEffect()
			}
		}
	case message.KindLastVisitedPath:
		if p, ok := a.History.Back(); ok {
			if err := a.ChangeDirectory(p); err != nil {
				appendLog(a, app.LogLevelError, err.Error())
			} else {
				return nil, exploreEffect()
			}
		}
	case message.KindNextVisitedPath:
		if p, ok := a.History.Forward(); ok {
			if err := a.ChangeDirectory(p); err != nil {
				appendLog(a, app.LogLevelError, err.Error())
			} else {
				return nil, exploreEffect()
			}
		}
	case message.KindFollowSymlink:
		applyFollowSymlink(a)
		return nil, exploreEffect()

	// Buffer editing.
	case message.KindSetInputBuffer:
		a.InputBuffer.Set(msg.Text)
	case message.KindResetInputBuffer:
		a.InputBuffer.Clear()
	case message.KindBufferInput:
		a.InputBuffer.AppendString(msg.Text)
	case message.KindBufferInputFromKey:
		if c, ok := keyToChar(msg.Key); ok {
			a.InputBuffer.AppendChar(c)
		}
	case message.KindRemoveInputBufferLastCharacter:
		a.InputBuffer.DeleteChar()
	case message.KindRemoveInputBufferLastWord:
		a.InputBuffer.DeleteWord()

	// Selection.
	case message.KindToggleSelection:
		if n := focusedNode(a); n != nil {
			a.Selection.Toggle(n.AbsolutePath)
		}
	case message.KindToggleSelectAll:
		if a.DirectoryBuffer != nil {
			paths := make([]string, len(a.DirectoryBuffer.Nodes))
			for i, n := range a.DirectoryBuffer.Nodes {
				paths[i] = n.AbsolutePath
			}
			a.Selection.ToggleAll(paths)
		}
	case message.KindClearSelection:
		a.Selection.Clear()

	// Filters.
	case message.KindAddNodeFilter:
		a.ExplorerConfig.AddFilter(msg.Filter)
	case message.KindAddNodeFilterFromInput:
		a.ExplorerConfig.AddFilter(newFilterFromInput(msg.FilterKind, a.InputBuffer.String()))
	case message.KindRemoveNodeFilter:
		a.ExplorerConfig.RemoveFilter(msg.Filter)
	case message.KindRemoveNodeFilterFromInput:
		a.ExplorerConfig.RemoveFilter(newFilterFromInput(msg.FilterKind, a.InputBuffer.String()))
	case message.KindRemoveLastNodeFilter:
		a.ExplorerConfig.RemoveLastFilter()
	case message.KindToggleNodeFilter:
		a.ExplorerConfig.ToggleFilter(msg.Filter)
	case message.KindResetNodeFilters:
		a.ExplorerConfig.ResetFilters()
	case message.KindClearNodeFilters:
		a.ExplorerConfig.ClearFilters()

	// Sorters.
	case message.KindAddNodeSorter:
		a.ExplorerConfig.AddSorter(msg.Sorter)
	case message.KindRemoveNodeSorter:
		a.ExplorerConfig.RemoveSorter(msg.SorterKind)
	case message.KindReverseNodeSorters:
		a.ExplorerConfig.ReverseSorters()
	case message.KindResetNodeSorters:
		a.ExplorerConfig.ResetSorters()
	case message.KindClearNodeSorters:
		a.ExplorerConfig.ClearSorters()
	case message.KindRemoveLastNodeSorter:
		a.ExplorerConfig.RemoveLastSorter()

	// Mode.
	case message.KindSwitchMode:
		if !a.SwitchMode(msg.Text) {
			appendLog(a, app.LogLevelError, "unknown mode: "+msg.Text)
		}

	// Lifecycle.
	case message.KindExplore:
		return nil, exploreEffect()
	case message.KindRefresh:
		return nil, &Effect{Kind: EffectRefresh}
	case message.KindClearScreen:
		return nil, &Effect{Kind: EffectClearScreen}
	case message.KindQuit:
		return nil, &Effect{Kind: EffectQuit, Output: a.FocusedPath()}
	case message.KindTerminate:
		return nil, &Effect{Kind: EffectTerminate}
	case message.KindPrintResultAndQuit:
		return nil, &Effect{Kind: EffectPrintResult, Output: resultOutput(a)}
	case message.KindPrintAppStateAndQuit:
		return nil, &Effect{Kind: EffectPrintAppState, Output: a.SerializeState()}

	// Logging.
	case message.KindLogInfo:
		appendLog(a, app.LogLevelInfo, msg.Text)
	case message.KindLogSuccess:
		appendLog(a, app.LogLevelSuccess, msg.Text)
	case message.KindLogError:
		appendLog(a, app.LogLevelError, msg.Text)

	// Side-effect requests.
	case message.KindCall:
		return nil, &Effect{Kind: EffectCall, Command: msg.Command, Args: msg.Args}
	case message.KindBashExec:
		return nil, &Effect{Kind: EffectBashExec, Script: msg.Text}
	case message.KindBashExecSilently:
		return nil, &Effect{Kind: EffectBashExecSilently, Script: msg.Text}

	default:
		appendLog(a, app.LogLevelError, "unhandled message: "+string(msg.Kind))
	}

	return nil, nil
}

func exploreEffect() *Effect {
	return &Effect{Kind: EffectExplore}
}

func appendLog(a *app.App, level app.LogLevel, text string) {
	a.AppendLog(nowFunc(), level, text)
	switch level {
	case app.LogLevelError:
		a.Errorf("%s", text)
	default:
		a.Infof("%s", text)
	}
}

func logParseFailure(a *app.App, kind message.Kind, input string) {
	appendLog(a, app.LogLevelError, "invalid integer input for "+string(kind)+": "+input)
}

func focusedNode(a *app.App) *node.Node {
	if a.DirectoryBuffer == nil {
		return nil
	}
	return a.DirectoryBuffer.FocusedNode()
}

// applyFollowSymlink implements FollowSymlink. It does nothing unless the
// focused node carries Symlink metadata (a resolvable symlink). If the
// link's direct target is a directory, it changes into that target;
// otherwise it changes into the target's parent and records the target as
// that directory's last focus.
func applyFollowSymlink(a *app.App) {
	n := focusedNode(a)
	if n == nil || n.Symlink == nil {
		return
	}
	target := n.Symlink.AbsolutePath
	if n.Symlink.IsDir {
		if err := a.ChangeDirectory(target); err != nil {
			appendLog(a, app.LogLevelError, err.Error())
		}
		return
	}
	parent := filepath.Dir(target)
	if err := a.ChangeDirectory(parent); err != nil {
		appendLog(a, app.LogLevelError, err.Error())
		return
	}
	a.LastFocus[parent] = filepath.Base(target)
}

func applyFocusByIndex(a *app.App, index int) {
	if a.DirectoryBuffer == nil {
		return
	}
	a.SetFocus(index)
}

func applyRelativeFocus(a *app.App, delta int) {
	if a.DirectoryBuffer == nil || len(a.DirectoryBuffer.Nodes) == 0 {
		return
	}
	n := len(a.DirectoryBuffer.Nodes)
	next := ((a.DirectoryBuffer.Focus+delta)%n + n) % n
	a.SetFocus(next)
}

func parseNonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func resultOutput(a *app.App) string {
	if a.Selection.Len() > 0 {
		result := ""
		for i, p := range a.Selection.Paths() {
			if i > 0 {
				result += "\n"
			}
			result += p
		}
		return result
	}
	return a.FocusedPath()
}

func keyToChar(key string) (rune, bool) {
	if key == "space" {
		return ' ', true
	}
	runes := []rune(key)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}
