// Package tasks implements the add, remove and complete operations on a day
// list. Each operation is one locked rewrite of the day file: stream every
// line, transform the stream, commit.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daylog/todo/internal/daylist"
	"github.com/daylog/todo/internal/debug"
)

var (
	// ErrInvalidIndex is returned when a task number is not in 1..len(pending).
	ErrInvalidIndex = errors.New("task number was not present")

	// ErrInvalidText is returned for task text that cannot be stored as a
	// single line.
	ErrInvalidText = errors.New("invalid task text")
)

// ValidateText checks that text fits on one line and is not blank.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: task is empty", ErrInvalidText)
	}
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: task must be a single line", ErrInvalidText)
	}
	if daylist.IsSentinel(text) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidText, text)
	}
	return nil
}

// Add appends text to the end of the pending section, creating the day file
// if this is the first task of the day.
func Add(ctx context.Context, path, text string, opts daylist.Options) error {
	if err := ValidateText(text); err != nil {
		return err
	}

	rw, err := openOrInitialize(ctx, path, opts)
	if err != nil {
		return err
	}

	added := false
	for rw.Scan() {
		line := rw.Line()
		switch {
		case line == "":
			continue
		case daylist.IsSentinel(line):
			if added {
				continue
			}
			rw.WriteLine(text)
			rw.WriteLine(daylist.Sentinel)
			added = true
		default:
			rw.WriteLine(line)
		}
	}
	if !added {
		rw.WriteLine(text)
		rw.WriteLine(daylist.Sentinel)
	}

	if err := rw.Commit(); err != nil {
		return err
	}
	debug.Logf("added task to %s\n", rw.Path())
	return nil
}

// Remove deletes pending task n (1-based, counting pending tasks only) and
// returns its text. An out-of-range n leaves the file unchanged and returns
// ErrInvalidIndex.
func Remove(ctx context.Context, path string, n int, opts daylist.Options) (string, error) {
	return takePending(ctx, path, n, opts, false)
}

// Complete moves pending task n to the end of the completed section and
// returns its text. The move happens in a single rewrite, so the task is
// never missing from both sections.
func Complete(ctx context.Context, path string, n int, opts daylist.Options) (string, error) {
	return takePending(ctx, path, n, opts, true)
}

func takePending(ctx context.Context, path string, n int, opts daylist.Options, markDone bool) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidIndex, n)
	}

	rw, err := daylist.OpenForRewrite(ctx, path, opts)
	if err != nil {
		return "", err
	}

	var (
		taken     string
		found     bool
		pending   int
		completed bool
	)
	for rw.Scan() {
		line := rw.Line()
		switch {
		case line == "":
			continue
		case daylist.IsSentinel(line):
			if completed {
				continue
			}
			completed = true
			rw.WriteLine(daylist.Sentinel)
			continue
		case !completed:
			pending++
			if pending == n {
				taken, found = line, true
				continue
			}
		}
		rw.WriteLine(line)
	}

	if err := rw.Err(); err != nil {
		_ = rw.Abort()
		return "", err
	}
	if !found {
		_ = rw.Abort()
		return "", fmt.Errorf("%w: %d (%d pending)", ErrInvalidIndex, n, pending)
	}

	if !completed {
		rw.WriteLine(daylist.Sentinel)
	}
	if markDone {
		rw.WriteLine(taken)
	}

	if err := rw.Commit(); err != nil {
		return "", err
	}
	debug.Logf("took pending task %d from %s (completed=%v)\n", n, rw.Path(), markDone)
	return taken, nil
}

func openOrInitialize(ctx context.Context, path string, opts daylist.Options) (*daylist.Rewrite, error) {
	rw, err := daylist.OpenForRewrite(ctx, path, opts)
	if err == nil || !errors.Is(err, daylist.ErrNotFound) {
		return rw, err
	}

	// Another invocation may create the file first; either way it now exists.
	if err := daylist.Initialize(path); err != nil && !errors.Is(err, daylist.ErrExists) {
		return nil, err
	}
	return daylist.OpenForRewrite(ctx, path, opts)
}
