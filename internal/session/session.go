// Package session resolves which day file an invocation operates on.
//
// The clock and the home directory are read here, once per invocation; the
// store and task operations only ever see the resolved Context.
package session

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/daylog/todo/internal/timeparsing"
	"github.com/daylog/todo/internal/utils"
)

const (
	// DefaultDirName is the lists directory under the user's home.
	DefaultDirName = ".todo_lists"

	// FileSuffix is the extension of every day file.
	FileSuffix = ".txt"
)

// Context is the resolved date and lists directory for one invocation.
type Context struct {
	Date time.Time
	Dir  string
}

// FileName returns the day file's base name, e.g. 2025-01-15.txt.
func (c Context) FileName() string {
	return c.Date.Format(timeparsing.DateOnlyLayout) + FileSuffix
}

// Path returns the full path of the day file.
func (c Context) Path() string {
	return filepath.Join(c.Dir, c.FileName())
}

// DefaultDir returns ~/.todo_lists.
func DefaultDir() (string, error) {
	home, err := utils.HomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Resolve builds a Context. An empty dateExpr means now; otherwise it is
// parsed relative to now (see timeparsing.ParseRelativeTime). An empty dir
// means DefaultDir; a leading ~ is expanded.
func Resolve(now time.Time, dateExpr, dir string) (Context, error) {
	date := now
	if dateExpr != "" {
		parsed, err := timeparsing.ParseRelativeTime(dateExpr, now)
		if err != nil {
			return Context{}, err
		}
		date = parsed.In(now.Location())
	}

	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Context{}, err
		}
		dir = d
	} else if dir[0] == '~' {
		home, err := utils.HomeDir()
		if err != nil {
			return Context{}, fmt.Errorf("cannot expand %q: %w", dir, err)
		}
		dir = utils.ExpandHome(dir, home)
	}

	y, m, d := date.Date()
	return Context{
		Date: time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		Dir:  filepath.Clean(dir),
	}, nil
}
