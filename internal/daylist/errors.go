package daylist

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a day file that must already exist is absent.
	ErrNotFound = errors.New("day list not found")

	// ErrExists is returned by Initialize when the day file is already present.
	ErrExists = errors.New("day list already exists")

	// ErrLocked is returned when another process holds the list lock past the
	// configured timeout.
	ErrLocked = errors.New("day list is locked by another process")
)

// IOError reports a filesystem failure on a specific path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
