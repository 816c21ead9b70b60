//go:build !linux && !windows

package supervisor

import (
	"errors"
	"os"
)

// restoreDefault is only implemented on Linux. Elsewhere abort relies on
// signal.Reset and the exit fallback.
func restoreDefault(os.Signal) error {
	return errors.ErrUnsupported
}
