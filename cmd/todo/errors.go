package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/tasks"
	"github.com/daylog/todo/internal/ui"
)

var (
	// stderr receives errors, warnings and hints.
	stderr io.Writer = os.Stderr

	// osExit is swapped in tests.
	osExit = os.Exit
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for failures that prevent the command from completing.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	osExit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
//
// Example:
//
//	FatalErrorWithHint("lists directory not found", "Run 'todo init' to create it")
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintf(stderr, "Error: %s\n", message)
	fmt.Fprintf(stderr, "Hint: %s\n", hint)
	osExit(1)
}

// WarnError writes a warning message to stderr and returns.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "%s "+format+"\n", append([]interface{}{ui.RenderWarn(ui.IconWarn + " Warning:")}, args...)...)
}

// Error codes used in --json error output.
const (
	codeUsage        = "usage"
	codeNotFound     = "not_found"
	codeInvalidIndex = "invalid_index"
	codeLocked       = "locked"
	codeIO           = "io"
)

// errorCode classifies an operation error.
func errorCode(err error) string {
	var ioe *daylist.IOError
	switch {
	case errors.Is(err, tasks.ErrInvalidText):
		return codeUsage
	case errors.Is(err, tasks.ErrInvalidIndex):
		return codeInvalidIndex
	case errors.Is(err, daylist.ErrNotFound):
		return codeNotFound
	case errors.Is(err, daylist.ErrLocked):
		return codeLocked
	case errors.As(err, &ioe):
		return codeIO
	}
	return ""
}

// exitWithError reports an operation error on stderr and exits non-zero.
func exitWithError(err error) {
	if jsonOutput {
		outputJSONError(err, errorCode(err))
		return
	}

	switch errorCode(err) {
	case codeUsage:
		FatalErrorWithHint(err.Error(), "Pass the task as words: todo add buy milk")
	case codeLocked:
		FatalErrorWithHint(err.Error(), "Another todo command is still running. Retry, or raise --lock-timeout.")
	case codeIO:
		var ioe *daylist.IOError
		errors.As(err, &ioe)
		if errors.Is(err, fs.ErrNotExist) && !dirExists(filepath.Dir(ioe.Path)) {
			FatalErrorWithHint(err.Error(), "Run 'todo init' to create the lists directory.")
			return
		}
		FatalError("%v", err)
	default:
		FatalError("%v", err)
	}
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
