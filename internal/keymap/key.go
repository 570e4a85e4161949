// Package keymap implements the mode/key-binding engine described in spec
// section 4.3: Key parsing, per-mode bindings with remaps and category
// fall-throughs, and the four-tier lookup priority. Generalized from
// mutagen's pkg/synchronization/core/ignore package's first-matching-rule
// resolution over a closed rule set.
package keymap

import (
	"strings"

	"github.com/pkg/errors"
)

// Key is a parsed keyboard input: either a named key ("enter", "tab", ...),
// a ctrl-combination ("ctrl-a"), or a single character (letter, digit, or
// special character).
type Key struct {
	raw string
}

// Named key constants, used both for parsing input and for constructing Key
// values programmatically (e.g. in tests or default bindings).
const (
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyTab       = "tab"
	KeySpace     = "space"
	KeyBackspace = "backspace"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyUp        = "up"
	KeyDown      = "down"
)

var namedKeys = map[string]bool{
	KeyEnter: true, KeyEsc: true, KeyTab: true, KeySpace: true,
	KeyBackspace: true, KeyLeft: true, KeyRight: true, KeyUp: true, KeyDown: true,
}

// ParseKey parses the textual key syntax described in spec section 4.3:
// lowercase letter, uppercase letter, digit, a named key, or "ctrl-<x>".
// "tab" is normalized to "ctrl-i", since the spec defines them equivalent.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, errors.New("empty key")
	}
	if s == KeyTab {
		return Key{raw: "ctrl-i"}, nil
	}
	if namedKeys[s] {
		return Key{raw: s}, nil
	}
	if strings.HasPrefix(s, "ctrl-") {
		rest := s[len("ctrl-"):]
		if len(rest) != 1 {
			return Key{}, errors.Errorf("invalid ctrl key %q", s)
		}
		return Key{raw: s}, nil
	}
	if len([]rune(s)) == 1 {
		return Key{raw: s}, nil
	}
	return Key{}, errors.Errorf("unrecognized key %q", s)
}

// String returns the canonical textual form of the key.
func (k Key) String() string {
	return k.raw
}

// IsSingleCharacter reports whether the key represents a single printable
// character (letter, digit, or special character), as opposed to a named or
// ctrl key.
func (k Key) IsSingleCharacter() bool {
	return len([]rune(k.raw)) == 1
}

// Class classifies a single-character key into one of the three character
// categories used for mode default fall-through: alphabet, number, or
// special character. Only meaningful when IsSingleCharacter is true.
type Class int

const (
	ClassNone Class = iota
	ClassAlphabet
	ClassNumber
	ClassSpecial
)

func (k Key) Class() Class {
	if !k.IsSingleCharacter() {
		return ClassNone
	}
	r := []rune(k.raw)[0]
	switch {
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return ClassAlphabet
	case r >= '0' && r <= '9':
		return ClassNumber
	default:
		return ClassSpecial
	}
}

// Char converts the key to its literal character, for BufferInputFromKey.
// Named non-textual keys (enter, esc, tab, backspace, arrows) return false;
// "space" yields ' '.
func (k Key) Char() (rune, bool) {
	if k.raw == KeySpace {
		return ' ', true
	}
	if k.IsSingleCharacter() {
		return []rune(k.raw)[0], true
	}
	return 0, false
}
