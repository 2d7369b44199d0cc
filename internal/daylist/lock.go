package daylist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/daylog/todo/internal/debug"
	"github.com/gofrs/flock"
)

const (
	// LockFileName is the advisory lock shared by every day file in a directory.
	LockFileName = ".todo.lock"

	// DefaultLockTimeout bounds how long a rewrite waits for another
	// invocation to finish.
	DefaultLockTimeout = 5 * time.Second

	lockPollInterval = 25 * time.Millisecond
	lockMaxInterval  = 250 * time.Millisecond
)

var errLockBusy = errors.New("lock busy")

// listLock serialises rewrites of day files in one directory across
// processes. Plain reads do not take it.
type listLock struct {
	flock *flock.Flock
}

func newListLock(dayFile string) *listLock {
	return &listLock{flock: flock.New(filepath.Join(filepath.Dir(dayFile), LockFileName))}
}

// acquire takes the exclusive lock, polling with backoff until timeout. A
// timeout <= 0 tries exactly once.
func (l *listLock) acquire(ctx context.Context, timeout time.Duration) error {
	start := time.Now()

	tryLock := func() error {
		locked, err := l.flock.TryLock()
		if err != nil {
			return backoff.Permanent(ioErr("lock", l.flock.Path(), err))
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}

	var err error
	if timeout <= 0 {
		err = tryLock()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
	} else {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = lockPollInterval
		bo.MaxInterval = lockMaxInterval
		bo.MaxElapsedTime = timeout
		err = backoff.Retry(tryLock, backoff.WithContext(bo, ctx))
	}

	switch {
	case err == nil:
		debug.Logf("acquired list lock after %v: %s\n", time.Since(start), l.flock.Path())
		return nil
	case errors.Is(err, errLockBusy):
		return fmt.Errorf("%w: %s (waited %v)", ErrLocked, l.flock.Path(), time.Since(start).Round(time.Millisecond))
	default:
		return err
	}
}

func (l *listLock) release() {
	if err := l.flock.Unlock(); err != nil {
		debug.Logf("releasing list lock %s: %v\n", l.flock.Path(), err)
	}
}
