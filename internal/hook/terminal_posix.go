//go:build linux || darwin || freebsd || netbsd || openbsd
// +build linux darwin freebsd netbsd openbsd

package hook

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// posixTerminal toggles stdin between raw and cooked mode via termios
// ioctls, the same raw-syscall style internal/explorer's linux inotify
// backend uses golang.org/x/sys/unix for rather than a higher-level
// library — no terminal/tty dependency is wired anywhere in the pack, so
// this is the justified stdlib-adjacent (syscall-level) exception
// documented in DESIGN.md.
type posixTerminal struct {
	fd int
}

// NewTerminal returns a Terminal that toggles raw mode on os.Stdin if it's
// a tty, or a no-op Terminal otherwise.
func NewTerminal() Terminal {
	fd := int(os.Stdin.Fd())
	if _, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err != nil {
		return noopTerminal{}
	}
	return &posixTerminal{fd: fd}
}

// Suspend captures the terminal's current state (normally raw mode, set by
// EnableRawMode when the main loop started), switches it to cooked mode
// for the duration of a foreground child process, and returns a function
// that restores the captured state. Callers must defer the returned
// function immediately so it still runs if the hook panics.
func (t *posixTerminal) Suspend() (func(), error) {
	current, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return func() {}, errors.Wrap(err, "unable to read terminal state")
	}
	captured := *current

	cooked := captured
	cooked.Iflag |= unix.ICRNL | unix.IXON
	cooked.Oflag |= unix.OPOST
	cooked.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &cooked); err != nil {
		return func() {}, errors.Wrap(err, "unable to switch to cooked mode")
	}

	return func() {
		unix.IoctlSetTermios(t.fd, ioctlSetTermios, &captured)
	}, nil
}

// EnableRawMode switches the terminal into raw mode (no echo, no line
// buffering, no signal-generating control characters) for the main loop's
// direct keyboard reads, returning a function that restores cooked mode.
func (t *posixTerminal) EnableRawMode() (func(), error) {
	original, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return func() {}, errors.Wrap(err, "unable to read terminal state")
	}

	raw := *original
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return func() {}, errors.Wrap(err, "unable to set raw mode")
	}

	return func() {
		unix.IoctlSetTermios(t.fd, ioctlSetTermios, original)
	}, nil
}
