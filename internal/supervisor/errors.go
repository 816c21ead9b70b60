package supervisor

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBusy is returned when Run is called while another Run on the same
// Supervisor is still in flight. Signal handler save/restore is not
// reentrant, so overlapping calls are refused rather than interleaved.
var ErrBusy = errors.New("supervisor: another command is already running")

var errEmptyCommand = errors.New("empty command")

// LaunchError reports a command that could not be started. No signal
// handlers were installed and no child exists.
type LaunchError struct {
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	if len(e.Argv) == 0 {
		return fmt.Sprintf("launching command: %v", e.Err)
	}
	return fmt.Sprintf("launching %s: %v", e.Argv[0], e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ChildFailedError reports a command that ran and exited non-zero.
// A child killed by a signal has ExitCode 128+signum and Signal set.
type ChildFailedError struct {
	Argv     []string
	ExitCode int
	Signal   os.Signal
}

func (e *ChildFailedError) Error() string {
	cmd := strings.Join(e.Argv, " ")
	if e.Signal != nil {
		return fmt.Sprintf("command %q killed by signal %v (exit code %d)", cmd, e.Signal, e.ExitCode)
	}
	return fmt.Sprintf("command %q failed with exit code %d", cmd, e.ExitCode)
}
