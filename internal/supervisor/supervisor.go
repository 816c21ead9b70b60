// Package supervisor runs external commands whose lifetime is bound to the
// henchman process.
//
// Each command is started in its own process group. While it runs, SIGINT
// and SIGTERM received by henchman are forwarded to that group, and then
// henchman terminates itself with the same signal so whatever launched it
// sees "killed by signal N" rather than a normal exit. That termination is a
// process-level abort: Run never returns on that path and there is no error
// value to catch.
//
// Handler ownership is scoped to a single Run call. The dispositions in
// place before the call are restored before it returns on every other path.
package supervisor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/steveyegge/henchman/internal/logging"
)

// DefaultAbortGrace is how long the abort path waits for the re-raised
// signal to terminate the process before exiting explicitly.
const DefaultAbortGrace = 2 * time.Second

// State is the lifecycle of a supervised command.
type State int32

const (
	NotStarted State = iota
	Running
	Completed
	Aborted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Result describes a command that ran to completion with exit code 0.
type Result struct {
	Argv     []string
	Pid      int
	ExitCode int
	Duration time.Duration
}

// Supervisor launches commands one at a time.
type Supervisor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	signals []os.Signal
	grace   time.Duration
	onStart func(pid int)
	log     *log.Entry

	mu    sync.Mutex
	state atomic.Int32
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithStdio sets the child's standard streams. Nil values inherit henchman's.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *Supervisor) {
		if stdin != nil {
			s.stdin = stdin
		}
		if stdout != nil {
			s.stdout = stdout
		}
		if stderr != nil {
			s.stderr = stderr
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(entry *log.Entry) Option {
	return func(s *Supervisor) {
		if entry != nil {
			s.log = entry
		}
	}
}

// WithOnStart registers a callback invoked with the child's pid once the
// child is running and forwarding is in place.
func WithOnStart(fn func(pid int)) Option {
	return func(s *Supervisor) { s.onStart = fn }
}

// WithSignals replaces the forwarded signal set (SIGINT and SIGTERM). Any
// signal in the set aborts henchman the same way, including ones the Go
// runtime would otherwise catch and discard, such as SIGUSR1.
func WithSignals(signals ...os.Signal) Option {
	return func(s *Supervisor) {
		if len(signals) > 0 {
			s.signals = signals
		}
	}
}

// WithAbortGrace sets how long the abort path waits for the re-raised signal.
func WithAbortGrace(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.grace = d
		}
	}
}

// New creates a Supervisor that inherits henchman's stdio.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
		grace:   DefaultAbortGrace,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSupervisor = New()

// RunAndForward runs argv with the package default Supervisor.
func RunAndForward(argv []string) (Result, error) {
	return defaultSupervisor.Run(argv)
}

// State reports the lifecycle state of the most recent Run.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Run starts argv in a new process group, forwards signals to it while it
// runs and waits for it to exit.
//
// A non-zero exit is reported as *ChildFailedError, a failure to start as
// *LaunchError. If SIGINT or SIGTERM arrives while the child runs, Run does
// not return: the signal is forwarded to the child's group and henchman
// terminates by the same signal.
//
// A forwarded signal that arrives after the child has exited but before Run
// restores the dispositions is sent to henchman again once they are back in
// place. A caller that has its own signal.Notify channel for that signal was
// already sent it by the runtime, so the caller sees it twice.
func (s *Supervisor) Run(argv []string) (Result, error) {
	if !s.mu.TryLock() {
		return Result{}, ErrBusy
	}
	defer s.mu.Unlock()

	s.state.Store(int32(NotStarted))

	if len(argv) == 0 {
		return Result{}, &LaunchError{Err: errEmptyCommand}
	}
	argv = append([]string(nil), argv...)
	entry := s.log.WithField("command", argv[0])

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204: argv is built from the deployment
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		entry.WithError(err).Debug("launch failed")
		return Result{Argv: argv}, &LaunchError{Argv: argv, Err: err}
	}
	pid := cmd.Process.Pid
	s.state.Store(int32(Running))

	reg := acquire(s.signals...)
	fwd := newForwarder(pid, reg, entry, s.grace, &s.state)
	go fwd.run()

	entry.WithFields(log.Fields{"pid": pid, "args": argv[1:]}).Debug("child started")
	if s.onStart != nil {
		s.onStart(pid)
	}

	waitErr := cmd.Wait()

	// Blocks forever if the forwarder has begun aborting.
	late := fwd.finish()
	late = append(late, reg.release()...)
	s.state.Store(int32(Completed))

	// Signals that raced with the child's exit belong to whoever owned them
	// before this call.
	for _, sig := range late {
		entry.WithField("signal", sig.String()).Debug("redelivering signal after restore")
		raise(sig)
	}

	res := Result{Argv: argv, Pid: pid, Duration: time.Since(start)}
	if waitErr != nil {
		var ee *exec.ExitError
		if !errors.As(waitErr, &ee) {
			return res, fmt.Errorf("waiting for %s: %w", argv[0], waitErr)
		}
	}

	code, sig := exitStatus(cmd.ProcessState)
	res.ExitCode = code
	entry.WithFields(log.Fields{"pid": pid, "exit_code": code, "duration": res.Duration}).Debug("child exited")

	if code != 0 {
		return res, &ChildFailedError{Argv: argv, ExitCode: code, Signal: sig}
	}
	return res, nil
}
