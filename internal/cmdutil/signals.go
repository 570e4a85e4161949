package cmdutil

import (
	"os"
	"syscall"
)

// TerminationSignals are the OS signals that should trigger a graceful
// shutdown of the main loop, adapted from the teacher's cmd/signals.go.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
