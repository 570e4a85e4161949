// Package message defines the closed message taxonomy that drives drift's
// interpreter (spec section 4.4) and the wire format used to decode messages
// arriving over the IPC inbound pipe (spec section 6). Go has no tagged-union
// type, so the taxonomy is represented as a Kind discriminator plus the
// union of payload fields each kind may use — the same flattened-variant
// shape mutagen uses for its protobuf-derived message types throughout
// pkg/synchronization/core (e.g. Conflict, Problem).
package message

import "github.com/drift-explorer/drift/internal/sortfilter"

// Kind identifies which message variant a Message carries.
type Kind string

const (
	KindFocusFirst                           Kind = "FocusFirst"
	KindFocusLast                            Kind = "FocusLast"
	KindFocusNext                            Kind = "FocusNext"
	KindFocusPrevious                        Kind = "FocusPrevious"
	KindFocusNextByRelativeIndexFromInput    Kind = "FocusNextByRelativeIndexFromInput"
	KindFocusPreviousByRelativeIndexFromInput Kind = "FocusPreviousByRelativeIndexFromInput"
	KindFocusPath                            Kind = "FocusPath"
	KindFocusByIndex                         Kind = "FocusByIndex"
	KindFocusByIndexFromInput                Kind = "FocusByIndexFromInput"
	KindFocusByFileName                      Kind = "FocusByFileName"

	KindChangeDirectory Kind = "ChangeDirectory"
	KindEnter           Kind = "Enter"
	KindBack            Kind = "Back"
	KindLastVisitedPath Kind = "LastVisitedPath"
	KindNextVisitedPath Kind = "NextVisitedPath"
	KindFollowSymlink   Kind = "FollowSymlink"

	KindSetInputBuffer                 Kind = "SetInputBuffer"
	KindResetInputBuffer               Kind = "ResetInputBuffer"
	KindBufferInput                    Kind = "BufferInput"
	KindBufferInputFromKey             Kind = "BufferInputFromKey"
	KindRemoveInputBufferLastCharacter Kind = "RemoveInputBufferLastCharacter"
	KindRemoveInputBufferLastWord      Kind = "RemoveInputBufferLastWord"

	KindToggleSelection  Kind = "ToggleSelection"
	KindToggleSelectAll  Kind = "ToggleSelectAll"
	KindClearSelection   Kind = "ClearSelection"

	KindAddNodeFilter           Kind = "AddNodeFilter"
	KindAddNodeFilterFromInput  Kind = "AddNodeFilterFromInput"
	KindRemoveNodeFilter        Kind = "RemoveNodeFilter"
	KindRemoveNodeFilterFromInput Kind = "RemoveNodeFilterFromInput"
	KindRemoveLastNodeFilter    Kind = "RemoveLastNodeFilter"
	KindToggleNodeFilter        Kind = "ToggleNodeFilter"
	KindResetNodeFilters        Kind = "ResetNodeFilters"
	KindClearNodeFilters        Kind = "ClearNodeFilters"

	KindAddNodeSorter       Kind = "AddNodeSorter"
	KindRemoveNodeSorter    Kind = "RemoveNodeSorter"
	KindReverseNodeSorters  Kind = "ReverseNodeSorters"
	KindResetNodeSorters    Kind = "ResetNodeSorters"
	KindClearNodeSorters    Kind = "ClearNodeSorters"
	KindRemoveLastNodeSorter Kind = "RemoveLastNodeSorter"

	KindSwitchMode Kind = "SwitchMode"

	KindExplore             Kind = "Explore"
	KindRefresh             Kind = "Refresh"
	KindClearScreen         Kind = "ClearScreen"
	KindQuit                Kind = "Quit"
	KindTerminate           Kind = "Terminate"
	KindPrintResultAndQuit  Kind = "PrintResultAndQuit"
	KindPrintAppStateAndQuit Kind = "PrintAppStateAndQuit"

	KindLogInfo    Kind = "LogInfo"
	KindLogSuccess Kind = "LogSuccess"
	KindLogError   Kind = "LogError"

	KindCall               Kind = "Call"
	KindBashExec           Kind = "BashExec"
	KindBashExecSilently   Kind = "BashExecSilently"
)

// Message is a single unit of intent processed by the interpreter. Only the
// fields relevant to Kind are populated; the rest are zero values.
type Message struct {
	Kind Kind `yaml:"kind"`

	// Path-bearing variants: ChangeDirectory, FocusPath.
	Path string `yaml:"path,omitempty"`

	// Index-bearing variants: FocusByIndex.
	Index int `yaml:"index,omitempty"`

	// FocusByFileName.
	FileName string `yaml:"file_name,omitempty"`

	// Text-bearing variants: SetInputBuffer, BufferInput, SwitchMode (mode
	// name), LogInfo/LogSuccess/LogError (message text), BashExec/
	// BashExecSilently (script).
	Text string `yaml:"text,omitempty"`

	// Key, for BufferInputFromKey — the raw key string to convert to a
	// character and append.
	Key string `yaml:"key,omitempty"`

	// Filter, for AddNodeFilter/ToggleNodeFilter/RemoveNodeFilter.
	Filter sortfilter.NodeFilter `yaml:"filter,omitempty"`

	// FilterKind, for AddNodeFilterFromInput/RemoveNodeFilterFromInput
	// (the input string comes from the current input buffer at dispatch
	// time, not from the wire).
	FilterKind sortfilter.FilterKind `yaml:"filter_kind,omitempty"`

	// Sorter, for AddNodeSorter.
	Sorter sortfilter.NodeSorter `yaml:"sorter,omitempty"`

	// SorterKind, for RemoveNodeSorter.
	SorterKind sortfilter.SorterKind `yaml:"sorter_kind,omitempty"`

	// Command/Args, for Call.
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}
