// Package inputbuffer implements the editable line described in spec
// section 3: append-char, delete-char, delete-word, clear, set. Modeled
// after the small buffered-line shape in mutagen's pkg/logging.writer (an
// append-then-trim buffer), generalized here to support deletion as well as
// append.
package inputbuffer

import "strings"

// Buffer is an editable single line of text.
type Buffer struct {
	content string
}

// New creates an empty input buffer.
func New() *Buffer {
	return &Buffer{}
}

// String returns the buffer's current content.
func (b *Buffer) String() string {
	return b.content
}

// Set replaces the buffer's content outright.
func (b *Buffer) Set(s string) {
	b.content = s
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.content = ""
}

// AppendChar appends a single character to the buffer.
func (b *Buffer) AppendChar(c rune) {
	b.content += string(c)
}

// AppendString appends s to the buffer.
func (b *Buffer) AppendString(s string) {
	b.content += s
}

// DeleteChar removes the last character, if any.
func (b *Buffer) DeleteChar() {
	if b.content == "" {
		return
	}
	runes := []rune(b.content)
	b.content = string(runes[:len(runes)-1])
}

// DeleteWord drops the trailing whitespace run, then the trailing
// non-whitespace run that follows it. On an all-whitespace buffer this
// empties it. Per spec section 8's boundary cases:
//
//	"  foo  bar  " -> "  foo  "
//	"   "          -> ""
func (b *Buffer) DeleteWord() {
	s := b.content

	trimmed := strings.TrimRight(s, " \t")
	if trimmed == "" {
		b.content = ""
		return
	}

	lastSpace := strings.LastIndexAny(trimmed, " \t")
	b.content = trimmed[:lastSpace+1]
}
