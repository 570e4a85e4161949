// Package logging provides drift's internal developer-diagnostics logger,
// distinct from the user-visible logs pane maintained by internal/app. It is
// adapted from mutagen's pkg/logging package: a Logger that is safe to call
// when nil, supports hierarchical sub-loggers via a dotted prefix, and gates
// Debug output on a configured level rather than a global toggle.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"sync"

	"github.com/fatih/color"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
	// lock serializes access to buffer.
	lock sync.Mutex
}

// trimCarriageReturn trims any single trailing carriage return from the end
// of a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.buffer = append(w.buffer, buffer...)

	var processed int
	remaining := w.buffer
	for {
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}
		w.callback(string(trimCarriageReturn(remaining[:index])))
		processed += index + 1
		remaining = remaining[index+1:]
	}

	if processed > 0 {
		leftover := len(w.buffer) - processed
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}
		w.buffer = w.buffer[:leftover]
	}

	return len(buffer), nil
}

// Logger is the main logger type. It has the property that it still
// functions if nil, but logs nothing in that case. It is safe for
// concurrent usage.
type Logger struct {
	// target is the underlying standard library logger used for output.
	target *log.Logger
	// level is the maximum level of message that this logger will emit.
	level Level
	// prefix is any hierarchical prefix specified for the logger.
	prefix string
}

// NewLogger creates a new root logger that writes lines at or below the
// specified level to the specified writer.
func NewLogger(level Level, output io.Writer) *Logger {
	return &Logger{
		target: log.New(output, "", log.Ldate|log.Ltime),
		level:  level,
	}
}

// Sublogger creates a new sublogger with the specified name, inheriting the
// parent's level and output target.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}

	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	return &Logger{
		target: l.target,
		level:  l.level,
		prefix: prefix,
	}
}

// output is the internal logging method.
func (l *Logger) output(line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	l.target.Output(3, line)
}

// enabled reports whether messages at the given level should be emitted.
func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

// Error logs error information with a red "Error:" prefix. Errors are always
// emitted unless the logger's level is LevelDisabled.
func (l *Logger) Error(err error) {
	if l.enabled(LevelError) {
		l.output(color.RedString("Error: %v", err))
	}
}

// Errorf logs a formatted error message, semantics equivalent to fmt.Errorf.
func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.enabled(LevelError) {
		l.output(color.RedString("Error: "+format, v...))
	}
}

// Warn logs a warning with a yellow "Warning:" prefix.
func (l *Logger) Warn(err error) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("Warning: %v", err))
	}
}

// Warnf logs a formatted warning, semantics equivalent to fmt.Printf.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(color.YellowString("Warning: "+format, v...))
	}
}

// Info logs information with semantics equivalent to fmt.Print, gated on
// LevelInfo.
func (l *Logger) Info(v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprint(v...))
	}
}

// Infof logs formatted information, semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Debug logs information with semantics equivalent to fmt.Print, but only if
// the logger's level is at least LevelDebug.
func (l *Logger) Debug(v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprint(v...))
	}
}

// Debugf logs formatted information, gated on LevelDebug.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(fmt.Sprintf(format, v...))
	}
}

// Writer returns an io.Writer that writes lines using Info. This is useful
// for wiring up subprocess stdout/stderr capture.
func (l *Logger) Writer() io.Writer {
	if !l.enabled(LevelInfo) {
		return ioutil.Discard
	}
	return &writer{callback: func(s string) { l.Info(s) }}
}
