package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/drift-explorer/drift/internal/keymap"
)

// keyReader translates a raw byte stream from a terminal in raw mode into
// the Key syntax internal/keymap understands (spec section 1's out-of-scope
// "keyboard/event source"), buffering unicode runes and a best-effort
// decode of the common arrow-key escape sequences.
type keyReader struct {
	r *bufio.Reader
}

func newKeyReader(r io.Reader) *keyReader {
	return &keyReader{r: bufio.NewReaderSize(r, 64)}
}

// Next blocks for the next key press and returns its parsed Key.
func (k *keyReader) Next() (keymap.Key, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return keymap.Key{}, err
	}

	switch {
	case b == 0x1b:
		return k.readEscape()
	case b == '\r' || b == '\n':
		return keymap.ParseKey(keymap.KeyEnter)
	case b == '\t':
		return keymap.ParseKey(keymap.KeyTab)
	case b == 0x7f || b == 0x08:
		return keymap.ParseKey(keymap.KeyBackspace)
	case b == ' ':
		return keymap.ParseKey(keymap.KeySpace)
	case b >= 0x01 && b <= 0x1a:
		return keymap.ParseKey(fmt.Sprintf("ctrl-%c", 'a'+b-1))
	case b < 0x80:
		return keymap.ParseKey(string(rune(b)))
	default:
		k.r.UnreadByte()
		r, _, err := k.r.ReadRune()
		if err != nil {
			return keymap.Key{}, err
		}
		return keymap.ParseKey(string(r))
	}
}

// readEscape handles the byte after a lone ESC. Terminals normally flush an
// entire arrow-key sequence ("\x1b[A" etc.) into the input buffer in one
// read, so if nothing is immediately buffered after the ESC, this is a
// standalone Escape key press rather than the start of a sequence.
func (k *keyReader) readEscape() (keymap.Key, error) {
	if k.r.Buffered() == 0 {
		return keymap.ParseKey(keymap.KeyEsc)
	}
	second, err := k.r.ReadByte()
	if err != nil {
		return keymap.ParseKey(keymap.KeyEsc)
	}
	if second != '[' || k.r.Buffered() == 0 {
		return keymap.ParseKey(keymap.KeyEsc)
	}
	third, err := k.r.ReadByte()
	if err != nil {
		return keymap.ParseKey(keymap.KeyEsc)
	}
	switch third {
	case 'A':
		return keymap.ParseKey(keymap.KeyUp)
	case 'B':
		return keymap.ParseKey(keymap.KeyDown)
	case 'C':
		return keymap.ParseKey(keymap.KeyRight)
	case 'D':
		return keymap.ParseKey(keymap.KeyLeft)
	default:
		return keymap.ParseKey(keymap.KeyEsc)
	}
}
