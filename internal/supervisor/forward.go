package supervisor

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// forwarder relays signals from a registration to the child's process
// group. The first signal received while the child is running starts the
// abort sequence, which ends the whole process and never returns.
//
// mu is the abort latch: the abort path takes it and never releases it, and
// finish takes it before Run may return, so a caller can never observe Run
// returning once an abort has begun.
type forwarder struct {
	pgid  int
	reg   *registration
	log   *log.Entry
	grace time.Duration
	state *atomic.Int32

	mu      sync.Mutex
	done    bool
	pending []os.Signal

	quit    chan struct{}
	stopped chan struct{}
}

func newForwarder(pgid int, reg *registration, entry *log.Entry, grace time.Duration, state *atomic.Int32) *forwarder {
	return &forwarder{
		pgid:    pgid,
		reg:     reg,
		log:     entry,
		grace:   grace,
		state:   state,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (f *forwarder) run() {
	defer close(f.stopped)
	for {
		select {
		case sig := <-f.reg.C():
			f.mu.Lock()
			if f.done {
				f.pending = append(f.pending, sig)
				f.mu.Unlock()
				continue
			}
			f.abort(sig)
		case <-f.quit:
			return
		}
	}
}

// abort forwards sig to the child's group, restores the default disposition
// and re-raises sig against this process. Called with mu held.
func (f *forwarder) abort(sig os.Signal) {
	f.state.Store(int32(Aborted))
	entry := f.log.WithFields(log.Fields{"signal": sig.String(), "pgid": f.pgid})
	entry.Debug("forwarding signal to process group")

	// Wait may already have reaped the child before finish took mu. The
	// group outlives its leader while any member is alive, so this still
	// reaches leftover grandchildren. A pid that still names a process group
	// is not reused, so an empty group only ever yields ESRCH.
	if err := signalGroup(f.pgid, sig); err != nil {
		// The group is gone when the child exited first; nothing to forward.
		if !isNoSuchProcess(err) {
			entry.WithError(err).Warn("failed to forward signal")
		}
	}

	signal.Reset(sig)
	if err := restoreDefault(sig); err != nil {
		entry.WithError(err).Debug("could not reset signal disposition")
	}
	entry.Debug("re-raising signal")
	raise(sig)

	// Only reached when the disposition could not be reset, for example on
	// platforms without restoreDefault, where Reset puts back an inherited
	// "ignored" or the runtime's catch-and-discard. Exit with the shell
	// convention for the signal.
	time.Sleep(f.grace)
	os.Exit(128 + signalNumber(sig))
}

// finish marks the wait as complete and stops the relay goroutine. It blocks
// forever if an abort is in progress. Returns signals that arrived after the
// child exited.
func (f *forwarder) finish() []os.Signal {
	f.mu.Lock()
	f.done = true
	f.mu.Unlock()

	close(f.quit)
	<-f.stopped

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}
