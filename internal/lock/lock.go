// Package lock serializes henchman operations on the same project across
// separate CLI invocations.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/steveyegge/henchman/internal/exitcode"
)

// retryDelay is how often a held lock is re-tried while waiting.
const retryDelay = 100 * time.Millisecond

// Dir returns the directory lock files are created in.
func Dir() string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return filepath.Join(v, "henchman")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("henchman-%d", os.Getuid()))
}

// Path returns the lock file for a project rooted at dir. The directory is
// hashed so two checkouts with the same base name do not share a lock.
func Path(project, dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return filepath.Join(Dir(), fmt.Sprintf("%s-%s.lock", project, hex.EncodeToString(sum[:6])))
}

// AcquireProject takes the operation lock for a project, waiting up to
// timeout. The returned function releases it.
func AcquireProject(project, dir string, timeout time.Duration) (func(), error) {
	return Acquire(Path(project, dir), timeout)
}

// Acquire takes an exclusive advisory lock on path, waiting up to timeout.
// A zero timeout tries exactly once. Returns an exitcode.ErrBusy error if
// the lock is still held when the timeout expires.
func Acquire(path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	fl := flock.New(path)

	var locked bool
	var err error
	if timeout <= 0 {
		locked, err = fl.TryLock()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		locked, err = fl.TryLockContext(ctx, retryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exitcode.Wrapf(exitcode.ErrBusy, err, "another henchman holds %s after waiting %s", path, timeout)
		}
		return nil, fmt.Errorf("lock acquisition failed: %w", err)
	}
	if !locked {
		return nil, exitcode.Newf(exitcode.ErrBusy, "another henchman holds %s", path)
	}

	return func() { _ = fl.Unlock() }, nil
}
