package keymap

// Lookup resolves a key press against a mode's bindings using the four-tier
// priority described in spec section 4.3:
//
//  1. If a remap exists for the key, substitute it (single level only).
//  2. An explicit OnKey binding for the (possibly remapped) key.
//  3. For single-character keys with no explicit binding, the matching
//     character-class default (alphabet/number/special).
//  4. The mode's catch-all Default binding.
//
// The resolved Key is also returned so callers (e.g. BufferInputFromKey) can
// act on the post-remap key rather than the one originally pressed.
func Lookup(mode Mode, pressed Key) (Key, *Action) {
	key := pressed
	if image, ok := mode.KeyBindings.Remaps[pressed.String()]; ok {
		if remapped, err := ParseKey(image); err == nil {
			key = remapped
		}
	}

	if action, ok := mode.KeyBindings.OnKey[key.String()]; ok {
		return key, &action
	}

	if key.IsSingleCharacter() {
		switch key.Class() {
		case ClassAlphabet:
			if mode.KeyBindings.OnAlphabet != nil {
				return key, mode.KeyBindings.OnAlphabet
			}
		case ClassNumber:
			if mode.KeyBindings.OnNumber != nil {
				return key, mode.KeyBindings.OnNumber
			}
		case ClassSpecial:
			if mode.KeyBindings.OnSpecialCharacter != nil {
				return key, mode.KeyBindings.OnSpecialCharacter
			}
		}
	}

	return key, mode.KeyBindings.Default
}
