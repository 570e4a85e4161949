package hook

// Terminal is the scoped raw-mode handoff described in spec section 5 and
// section 4.7: foreground hooks need the tty in its normal cooked state
// (so the child process's own line editing and signal handling work), and
// the main loop's raw mode must always be restored afterward, including on
// panic. Suspend returns a restore function the caller must invoke via
// defer immediately after calling Suspend, before doing anything else that
// could panic.
type Terminal interface {
	// EnableRawMode switches the terminal into raw mode for the main
	// loop's direct keyboard reads, returning a function that restores
	// cooked mode.
	EnableRawMode() (restore func(), err error)
	// Suspend captures the terminal's current state, switches it to
	// cooked mode for a foreground child process, and returns a function
	// that restores the captured state.
	Suspend() (restore func(), err error)
}

// noopTerminal is used when standard input isn't a terminal (piped input,
// CI, non-interactive invocation) or on platforms with no raw-mode
// implementation: there is no raw state to tear down, so restore is a
// no-op.
type noopTerminal struct{}

func (noopTerminal) EnableRawMode() (func(), error) {
	return func() {}, nil
}

func (noopTerminal) Suspend() (func(), error) {
	return func() {}, nil
}
