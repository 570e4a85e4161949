package keymap

import "github.com/drift-explorer/drift/internal/message"

// Action is a key binding's effect: help text plus the messages it produces.
type Action struct {
	Help     string             `yaml:"help"`
	Messages []message.Message `yaml:"messages"`
}

// KeyBindings is a mode's full binding table.
type KeyBindings struct {
	// Remaps substitutes one key for another before any other lookup tier
	// runs. Single-level only (spec section 9's Open Question resolution):
	// the image of a remap is never itself looked up in Remaps again.
	Remaps map[string]string `yaml:"remaps"`

	// OnKey holds explicit per-key bindings, keyed by Key.String().
	OnKey map[string]Action `yaml:"on_key"`

	// Category defaults, consulted for single-character keys with no
	// explicit OnKey entry.
	OnAlphabet         *Action `yaml:"on_alphabet"`
	OnNumber           *Action `yaml:"on_number"`
	OnSpecialCharacter *Action `yaml:"on_special_character"`

	// Default is the catch-all binding used when nothing else matches.
	Default *Action `yaml:"default"`
}

// Mode is a named set of key bindings active at a given time.
type Mode struct {
	Name        string      `yaml:"name"`
	Help        string      `yaml:"help"`
	KeyBindings KeyBindings `yaml:"key_bindings"`
}

// Map is the full set of configured modes, keyed by name.
type Map map[string]Mode
