package cmd

import (
	"errors"
	"os"

	"github.com/steveyegge/henchman/internal/deploy"
	"github.com/steveyegge/henchman/internal/exitcode"
	"github.com/steveyegge/henchman/internal/source"
	"github.com/steveyegge/henchman/internal/supervisor"
	"github.com/steveyegge/henchman/internal/workspace"
)

// classify attaches an exit code to err based on the failure it wraps.
// Errors that already carry a code keep it.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var coded *exitcode.Error
	if errors.As(err, &coded) {
		return err
	}

	var (
		notFound *source.NotFoundError
		parseErr *deploy.ParseError
		launch   *supervisor.LaunchError
		failed   *supervisor.ChildFailedError
	)
	switch {
	case errors.As(err, &failed):
		return exitcode.WithCode(childExitCode(failed), err)
	case errors.As(err, &launch):
		return exitcode.WithCode(exitcode.ErrLaunch, err)
	case errors.As(err, &parseErr):
		return exitcode.WithCode(exitcode.ErrParse, err)
	case errors.As(err, &notFound):
		return exitcode.WithCode(exitcode.ErrFileNotFound, err)
	case errors.Is(err, supervisor.ErrBusy):
		return exitcode.WithCode(exitcode.ErrBusy, err)
	case errors.Is(err, workspace.ErrNoProject):
		return exitcode.WithCode(exitcode.ErrUsage, err)
	case errors.Is(err, os.ErrPermission):
		return exitcode.WithCode(exitcode.ErrPermission, err)
	}
	return err
}

// childExitCode is ErrChildFailed unless --propagate-exit asks for the
// engine's own status.
func childExitCode(e *supervisor.ChildFailedError) int {
	if !propagateExit || e.ExitCode <= 0 || e.ExitCode > 255 {
		return exitcode.ErrChildFailed
	}
	return e.ExitCode
}
