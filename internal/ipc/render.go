package ipc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drift-explorer/drift/internal/app"
	"github.com/drift-explorer/drift/internal/keymap"
)

// Render rewrites every view FIFO from the current App state, per spec
// section 4.6's "each view is periodically rewritten ... on render". A
// failed write (no reader attached) is not an error the caller need act
// on; ViewWriter.Write already absorbs that case.
func Render(s *Session, a *app.App) {
	s.SelectionOut.Write(joinLines(a.Selection.Paths()))
	s.ResultOut.Write(resultOutput(a))
	s.LogsOut.Write(renderLogs(a))
	s.DirectoryNodesOut.Write(joinLines(directoryPaths(a)))
	s.GlobalHelpOut.Write(RenderGlobalHelp(a.Modes))
	s.FocusOut.Write(a.FocusedPath())
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func directoryPaths(a *app.App) []string {
	if a.DirectoryBuffer == nil {
		return nil
	}
	paths := make([]string, len(a.DirectoryBuffer.Nodes))
	for i, n := range a.DirectoryBuffer.Nodes {
		paths[i] = n.AbsolutePath
	}
	return paths
}

// resultOutput mirrors spec section 4.4's PrintResultAndQuit/result_out
// rule: the selection if non-empty, else the focused path.
func resultOutput(a *app.App) string {
	if a.Selection.Len() > 0 {
		return strings.Join(a.Selection.Paths(), "\n")
	}
	return a.FocusedPath()
}

func renderLogs(a *app.App) string {
	var b strings.Builder
	for _, entry := range a.Logs {
		fmt.Fprintf(&b, "[%s] %s: %s\n", entry.Timestamp.Format("15:04:05"), entry.Level, entry.Message)
	}
	return b.String()
}

// RenderGlobalHelp dumps mode -> key -> help, the content global_help_menu_out
// serves, sorted for deterministic output.
func RenderGlobalHelp(modes keymap.Map) string {
	var b strings.Builder

	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mode := modes[name]
		fmt.Fprintf(&b, "%s:\n", name)

		keys := make([]string, 0, len(mode.KeyBindings.OnKey))
		for key := range mode.KeyBindings.OnKey {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if help := mode.KeyBindings.OnKey[key].Help; help != "" {
				fmt.Fprintf(&b, "  %s: %s\n", key, help)
			}
		}

		writeCategoryHelp(&b, "alphabet", mode.KeyBindings.OnAlphabet)
		writeCategoryHelp(&b, "number", mode.KeyBindings.OnNumber)
		writeCategoryHelp(&b, "special_character", mode.KeyBindings.OnSpecialCharacter)
		writeCategoryHelp(&b, "default", mode.KeyBindings.Default)
	}

	return b.String()
}

func writeCategoryHelp(b *strings.Builder, label string, action *keymap.Action) {
	if action == nil || action.Help == "" {
		return
	}
	fmt.Fprintf(b, "  <%s>: %s\n", label, action.Help)
}
