package daylist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"
)

func writeDay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2025-01-15.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDay(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInitialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2025-01-15.txt")

	require.NoError(t, Initialize(path))
	require.Equal(t, Sentinel+"\n", readDay(t, path))

	err := Initialize(path)
	require.ErrorIs(t, err, ErrExists)
	require.Equal(t, Sentinel+"\n", readDay(t, path), "existing file must not be touched")
}

func TestInitializeMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "2025-01-15.txt")

	err := Initialize(path)
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	require.Equal(t, path, ioe.Path)
}

func TestOpenForRewriteNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2025-01-15.txt")

	_, err := OpenForRewrite(context.Background(), path, Options{})
	require.ErrorIs(t, err, ErrNotFound)

	_, statErr := os.Stat(path + TempSuffix)
	require.True(t, os.IsNotExist(statErr), "no temp file should be created")
}

func TestRewriteCommitReplacesFile(t *testing.T) {
	path := writeDay(t, "a\nb\n"+Sentinel+"\nc\n")

	rw, err := OpenForRewrite(context.Background(), path, Options{})
	require.NoError(t, err)

	var seen []string
	for rw.Scan() {
		seen = append(seen, rw.Line())
		rw.WriteLine(rw.Line() + "!")
	}
	require.NoError(t, rw.Commit())

	require.Equal(t, []string{"a", "b", Sentinel, "c"}, seen)
	require.Equal(t, "a!\nb!\n"+Sentinel+"!\nc!\n", readDay(t, path))

	_, statErr := os.Stat(path + TempSuffix)
	require.True(t, os.IsNotExist(statErr), "temp file should be renamed away")

	// A second finish is rejected but harmless.
	require.Error(t, rw.Commit())
	require.NoError(t, rw.Abort())
}

func TestRewriteAbortLeavesOriginal(t *testing.T) {
	original := "a\n\nb\n" + Sentinel + "\n"
	path := writeDay(t, original)

	rw, err := OpenForRewrite(context.Background(), path, Options{})
	require.NoError(t, err)
	for rw.Scan() {
		rw.WriteLine("garbage")
	}
	require.NoError(t, rw.Abort())
	require.NoError(t, rw.Abort())

	require.Equal(t, original, readDay(t, path))
	_, statErr := os.Stat(path + TempSuffix)
	require.True(t, os.IsNotExist(statErr))
}

func TestRewriteReleasesLock(t *testing.T) {
	path := writeDay(t, Sentinel+"\n")

	for i := 0; i < 3; i++ {
		rw, err := OpenForRewrite(context.Background(), path, Options{})
		require.NoError(t, err, "iteration %d", i)
		for rw.Scan() {
			rw.WriteLine(rw.Line())
		}
		if i%2 == 0 {
			require.NoError(t, rw.Commit())
		} else {
			require.NoError(t, rw.Abort())
		}
	}
}

func TestRewriteLockedByAnotherHolder(t *testing.T) {
	path := writeDay(t, Sentinel+"\n")

	other := flock.New(filepath.Join(filepath.Dir(path), LockFileName))
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = other.Unlock() }()

	_, err = OpenForRewrite(context.Background(), path, Options{})
	require.ErrorIs(t, err, ErrLocked)

	start := time.Now()
	_, err = OpenForRewrite(context.Background(), path, Options{LockTimeout: 100 * time.Millisecond})
	require.ErrorIs(t, err, ErrLocked)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	require.Equal(t, Sentinel+"\n", readDay(t, path))
}

func TestRewriteWaitsForLockRelease(t *testing.T) {
	path := writeDay(t, Sentinel+"\n")

	other := flock.New(filepath.Join(filepath.Dir(path), LockFileName))
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = other.Unlock()
	}()

	rw, err := OpenForRewrite(context.Background(), path, Options{LockTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.NoError(t, rw.Abort())
}

func TestRewriteFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	require.NoError(t, os.WriteFile(target, []byte("a\n"+Sentinel+"\n"), 0o644))
	link := filepath.Join(dir, "2025-01-15.txt")
	require.NoError(t, os.Symlink(target, link))

	rw, err := OpenForRewrite(context.Background(), link, Options{})
	require.NoError(t, err)
	for rw.Scan() {
		rw.WriteLine(rw.Line())
	}
	rw.WriteLine("b")
	require.NoError(t, rw.Commit())

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive the rewrite")
	require.Equal(t, "a\n"+Sentinel+"\nb\n", readDay(t, target))
}

func TestLoad(t *testing.T) {
	path := writeDay(t, "walk dog\n"+Sentinel+"\nbuy milk\n")

	list, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"walk dog"}, list.Pending)
	require.Equal(t, []string{"buy milk"}, list.Completed)

	_, err = Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.True(t, errors.Is(err, ErrNotFound))
}
