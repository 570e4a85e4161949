//go:build darwin || freebsd || netbsd || openbsd
// +build darwin freebsd netbsd openbsd

package hook

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)
