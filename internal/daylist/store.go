package daylist

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/daylog/todo/internal/debug"
	"github.com/daylog/todo/internal/utils"
)

// TempSuffix is appended to a day file's path to name its rewrite buffer.
const TempSuffix = ".temp"

const filePerm = 0o644

// Options tunes rewrites.
type Options struct {
	// LockTimeout is how long to wait for the directory lock. Zero or
	// negative tries once and fails with ErrLocked if it is held.
	LockTimeout time.Duration
}

// Rewrite streams the lines of an existing day file into a temp file that
// replaces it on Commit. A Rewrite must end with Commit or Abort.
type Rewrite struct {
	path     string
	tempPath string

	src     *os.File
	scanner *bufio.Scanner
	line    string

	tmp *os.File
	w   *bufio.Writer
	err error

	lock *listLock
	done bool
}

// OpenForRewrite locks the list directory, opens path for reading and
// creates path+TempSuffix for writing. It returns ErrNotFound (wrapped) if
// the day file does not exist; the caller decides whether to Initialize it.
// Symlinked day files are rewritten at their target.
func OpenForRewrite(ctx context.Context, path string, opts Options) (*Rewrite, error) {
	target, err := utils.ResolveForWrite(path)
	if err != nil {
		return nil, ioErr("resolve", path, err)
	}
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, ioErr("stat", target, err)
	}

	lock := newListLock(target)
	if err := lock.acquire(ctx, opts.LockTimeout); err != nil {
		return nil, err
	}

	src, err := os.Open(target) // #nosec G304 - day file path from session context
	if err != nil {
		lock.release()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, ioErr("open", target, err)
	}

	perm := fs.FileMode(filePerm)
	if info, err := src.Stat(); err == nil {
		perm = info.Mode().Perm()
	}

	tempPath := target + TempSuffix
	tmp, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) // #nosec G304
	if err != nil {
		_ = src.Close()
		lock.release()
		return nil, ioErr("create temp file", tempPath, err)
	}

	debug.Logf("rewrite %s via %s\n", target, tempPath)
	return &Rewrite{
		path:     target,
		tempPath: tempPath,
		src:      src,
		scanner:  newLineScanner(src),
		tmp:      tmp,
		w:        bufio.NewWriter(tmp),
		lock:     lock,
	}, nil
}

// Path returns the day file being rewritten.
func (r *Rewrite) Path() string {
	return r.path
}

// Scan advances to the next line of the original file.
func (r *Rewrite) Scan() bool {
	if r.done || !r.scanner.Scan() {
		return false
	}
	r.line = trimLine(r.scanner.Text())
	return true
}

// Line returns the line read by the last Scan, without its newline.
func (r *Rewrite) Line() string {
	return r.line
}

// Err returns the first read error encountered while scanning.
func (r *Rewrite) Err() error {
	if err := r.scanner.Err(); err != nil {
		return ioErr("read", r.path, err)
	}
	return nil
}

// WriteLine appends line and a newline to the new content. Write errors are
// sticky and reported by Commit.
func (r *Rewrite) WriteLine(line string) {
	if r.err != nil || r.done {
		return
	}
	if _, err := r.w.WriteString(line); err != nil {
		r.err = err
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.err = err
	}
}

// Commit makes the new content durable and renames it over the original.
// On any failure the temp file is removed and the original is left as it
// was.
func (r *Rewrite) Commit() error {
	if r.done {
		return errors.New("rewrite already finished")
	}
	if err := r.Err(); err != nil {
		_ = r.Abort()
		return err
	}
	if r.err != nil {
		err := ioErr("write", r.tempPath, r.err)
		_ = r.Abort()
		return err
	}
	if err := r.w.Flush(); err != nil {
		_ = r.Abort()
		return ioErr("write", r.tempPath, err)
	}

	r.done = true
	defer r.lock.release()

	_ = r.src.Close()
	if err := utils.SyncAndClose(r.tmp); err != nil {
		_ = os.Remove(r.tempPath)
		return ioErr("sync", r.tempPath, err)
	}
	if err := utils.DefaultRenameRetry(r.tempPath, r.path); err != nil {
		_ = os.Remove(r.tempPath)
		return ioErr("replace", r.path, err)
	}
	return nil
}

// Abort discards the new content. It is a no-op after Commit or a previous
// Abort.
func (r *Rewrite) Abort() error {
	if r.done {
		return nil
	}
	r.done = true
	defer r.lock.release()

	_ = r.src.Close()
	_ = r.tmp.Close()
	if err := os.Remove(r.tempPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioErr("remove temp file", r.tempPath, err)
	}
	return nil
}

// Initialize creates a day file containing only the sentinel line. It
// returns ErrExists (wrapped) if the file is already present.
func Initialize(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm) // #nosec G304
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &IOError{Op: "initialize", Path: path, Err: ErrExists}
		}
		return ioErr("create", path, err)
	}
	if _, err := f.WriteString(Sentinel + "\n"); err != nil {
		_ = f.Close()
		return ioErr("write", path, err)
	}
	if err := utils.SyncAndClose(f); err != nil {
		return ioErr("sync", path, err)
	}
	debug.Logf("initialized %s\n", path)
	return nil
}

// Load parses the day file at path without locking it.
func Load(path string) (*TaskList, error) {
	f, err := os.Open(path) // #nosec G304 - day file path from session context
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path)
		}
		return nil, ioErr("open", path, err)
	}
	defer func() { _ = f.Close() }()

	list, err := Parse(f)
	if err != nil {
		return nil, ioErr("read", path, err)
	}
	return list, nil
}

func notFound(path string) error {
	return &IOError{Op: "open", Path: path, Err: ErrNotFound}
}
