package message

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	direrrors "github.com/drift-explorer/drift/internal/errors"
	"github.com/drift-explorer/drift/internal/sortfilter"
)

// Parse decodes a single line of the msg_in wire format (spec section 6):
// a tag optionally followed by ": <value>". Complex messages carry a
// brace-delimited payload, e.g. "AddNodeFilter: {kind: IRelativePathDoesContain,
// input: foo}", which is already a YAML flow mapping and is unmarshalled
// as-is with gopkg.in/yaml.v2 — reusing the dependency
// that internal/config already pulls in for strict config parsing, rather
// than hand-rolling a second ad hoc parser.
func Parse(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Message{}, &direrrors.MessageError{Line: line, Cause: errors.New("empty message")}
	}

	tag := line
	payload := ""
	if idx := strings.Index(line, ":"); idx != -1 {
		tag = strings.TrimSpace(line[:idx])
		payload = strings.TrimSpace(line[idx+1:])
	}

	kind := Kind(tag)
	switch kind {
	case KindFocusFirst, KindFocusLast, KindFocusNext, KindFocusPrevious,
		KindFocusNextByRelativeIndexFromInput, KindFocusPreviousByRelativeIndexFromInput,
		KindFocusByIndexFromInput, KindEnter, KindBack, KindLastVisitedPath,
		KindNextVisitedPath, KindFollowSymlink, KindResetInputBuffer,
		KindBufferInputFromKey, KindRemoveInputBufferLastCharacter,
		KindRemoveInputBufferLastWord, KindToggleSelection, KindToggleSelectAll,
		KindClearSelection, KindRemoveLastNodeFilter, KindResetNodeFilters,
		KindClearNodeFilters, KindReverseNodeSorters, KindResetNodeSorters,
		KindClearNodeSorters, KindRemoveLastNodeSorter, KindExplore, KindRefresh,
		KindClearScreen, KindQuit, KindTerminate, KindPrintResultAndQuit,
		KindPrintAppStateAndQuit:
		return Message{Kind: kind}, nil

	case KindFocusPath, KindChangeDirectory:
		return Message{Kind: kind, Path: payload}, nil

	case KindFocusByFileName:
		return Message{Kind: kind, FileName: payload}, nil

	case KindFocusByIndex:
		idx, err := strconv.Atoi(payload)
		if err != nil {
			return Message{}, &direrrors.MessageError{Line: line, Cause: errors.Wrap(err, "invalid index")}
		}
		return Message{Kind: kind, Index: idx}, nil

	case KindSetInputBuffer, KindBufferInput, KindSwitchMode,
		KindLogInfo, KindLogSuccess, KindLogError, KindBashExec, KindBashExecSilently:
		return Message{Kind: kind, Text: payload}, nil

	case KindAddNodeFilter, KindRemoveNodeFilter, KindToggleNodeFilter:
		filter, err := parseFilter(payload)
		if err != nil {
			return Message{}, &direrrors.MessageError{Line: line, Cause: err}
		}
		return Message{Kind: kind, Filter: filter}, nil

	case KindAddNodeFilterFromInput, KindRemoveNodeFilterFromInput:
		fk := sortfilter.FilterKind(payload)
		if !sortfilter.IsValidFilterKind(fk) {
			return Message{}, &direrrors.MessageError{Line: line, Cause: errors.Errorf("unknown filter kind %q", payload)}
		}
		return Message{Kind: kind, FilterKind: fk}, nil

	case KindAddNodeSorter:
		sorter, err := parseSorter(payload)
		if err != nil {
			return Message{}, &direrrors.MessageError{Line: line, Cause: err}
		}
		return Message{Kind: kind, Sorter: sorter}, nil

	case KindRemoveNodeSorter:
		sk := sortfilter.SorterKind(payload)
		if !sortfilter.IsValidSorterKind(sk) {
			return Message{}, &direrrors.MessageError{Line: line, Cause: errors.Errorf("unknown sorter kind %q", payload)}
		}
		return Message{Kind: kind, SorterKind: sk}, nil

	case KindCall:
		command, args, err := parseCall(payload)
		if err != nil {
			return Message{}, &direrrors.MessageError{Line: line, Cause: err}
		}
		return Message{Kind: kind, Command: command, Args: args}, nil

	default:
		return Message{}, &direrrors.MessageError{Line: line, Cause: errors.Errorf("unknown message tag %q", tag)}
	}
}

// braceMapping is the shape a brace-delimited filter/sorter payload decodes
// into as a YAML flow mapping.
type braceMapping struct {
	Kind    string `yaml:"kind"`
	Input   string `yaml:"input"`
	Reverse bool   `yaml:"reverse"`
}

func decodeBraces(payload string) (braceMapping, error) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, "{") || !strings.HasSuffix(payload, "}") {
		return braceMapping{}, errors.Errorf("expected brace-delimited payload, got %q", payload)
	}
	// A YAML flow mapping is exactly this brace syntax; unmarshal directly.
	var m braceMapping
	if err := yaml.Unmarshal([]byte(payload), &m); err != nil {
		return braceMapping{}, errors.Wrap(err, "malformed payload")
	}
	return m, nil
}

func parseFilter(payload string) (sortfilter.NodeFilter, error) {
	m, err := decodeBraces(payload)
	if err != nil {
		return sortfilter.NodeFilter{}, err
	}
	kind := sortfilter.FilterKind(m.Kind)
	if !sortfilter.IsValidFilterKind(kind) {
		return sortfilter.NodeFilter{}, errors.Errorf("unknown filter kind %q", m.Kind)
	}
	return sortfilter.NodeFilter{Kind: kind, Input: m.Input}, nil
}

func parseSorter(payload string) (sortfilter.NodeSorter, error) {
	m, err := decodeBraces(payload)
	if err != nil {
		return sortfilter.NodeSorter{}, err
	}
	kind := sortfilter.SorterKind(m.Kind)
	if !sortfilter.IsValidSorterKind(kind) {
		return sortfilter.NodeSorter{}, errors.Errorf("unknown sorter kind %q", m.Kind)
	}
	return sortfilter.NodeSorter{Kind: kind, Reverse: m.Reverse}, nil
}

// parseCall splits a Call payload of the form "command arg1 arg2" into a
// command and its arguments using shell-like whitespace splitting (no quote
// handling, matching the wire format's plain-line design).
func parseCall(payload string) (string, []string, error) {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", nil, errors.New("Call requires a command")
	}
	return fields[0], fields[1:], nil
}
