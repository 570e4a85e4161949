// Package cmdutil provides the root command's exit-handling helpers,
// adapted from the teacher's cmd package (cmd/error.go).
package cmdutil

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
}

// Fatal prints an error message to standard error and terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
