package supervisor

import (
	"os"
	"os/signal"
)

// registration is the scoped ownership of the process-wide handlers for a
// set of signals. acquire records each signal's prior disposition and routes
// the signals to a private channel; release restores what was recorded.
//
// Handlers that callers registered with signal.Notify on their own channels
// are never displaced: Notify and Stop on the private channel leave them in
// place, so only the ignored state needs to be put back explicitly.
type registration struct {
	ch       chan os.Signal
	signals  []os.Signal
	ignored  []bool
	released bool
}

func acquire(signals ...os.Signal) *registration {
	r := &registration{
		ch:      make(chan os.Signal, 2*len(signals)),
		signals: signals,
		ignored: make([]bool, len(signals)),
	}
	for i, sig := range signals {
		r.ignored[i] = signal.Ignored(sig)
	}
	signal.Notify(r.ch, signals...)
	return r
}

// C returns the channel the owned signals are delivered to.
func (r *registration) C() <-chan os.Signal {
	return r.ch
}

// release restores the recorded dispositions and returns any signals that
// were delivered to the private channel but never consumed. Safe to call
// more than once.
func (r *registration) release() []os.Signal {
	if r.released {
		return nil
	}
	r.released = true

	signal.Stop(r.ch)
	for i, sig := range r.signals {
		if r.ignored[i] {
			signal.Ignore(sig)
		}
	}

	var pending []os.Signal
	for {
		select {
		case sig := <-r.ch:
			pending = append(pending, sig)
		default:
			return pending
		}
	}
}
