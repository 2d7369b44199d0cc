// Package debug gates diagnostic and informational output for the todo CLI.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("TODO_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	outMu  sync.Mutex
	stderr io.Writer = os.Stderr
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetOutput redirects diagnostic output to w and returns a func restoring
// the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	outMu.Lock()
	defer outMu.Unlock()
	prev := stderr
	stderr = w
	return func() {
		outMu.Lock()
		defer outMu.Unlock()
		stderr = prev
	}
}

// Logf writes to stderr when TODO_DEBUG is set or --verbose was given.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(stderr, format, args...)
	}
}
