// Package logging configures the diagnostic logger shared by henchman packages.
//
// Diagnostics go to stderr through logrus; user-facing progress is printed
// separately through the style package.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/steveyegge/henchman/internal/ui"
)

// Setup configures the standard logrus logger and returns an entry tagged
// with a fresh run_id so all lines of one invocation can be correlated.
func Setup(level string, out io.Writer) (*log.Entry, error) {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableColors: !ui.IsTerminal(out) || !ui.ShouldUseColor(),
	})

	return log.WithField("run_id", uuid.NewString()), nil
}

// Discard returns an entry that drops everything, for callers that pass no logger.
func Discard() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}
