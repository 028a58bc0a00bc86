package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output with status prefixes, kept apart from the structured
// debug log. Stdout and Stderr can be swapped by tests and by the discover
// command when the route file itself is streamed to stdout.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// UserInfo prints an info message.
func UserInfo(format string, args ...any) {
	fmt.Fprintf(Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message.
func UserSuccess(format string, args ...any) {
	fmt.Fprintf(Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...any) {
	fmt.Fprintf(Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...any) {
	fmt.Fprintf(Stderr, "✗ "+format+"\n", args...)
}

// RedirectUser sends all user output to w until the returned func is called.
func RedirectUser(w io.Writer) (restore func()) {
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = w, w
	return func() {
		Stdout, Stderr = prevOut, prevErr
	}
}
