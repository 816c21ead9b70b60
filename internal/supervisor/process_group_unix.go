//go:build !windows

package supervisor

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup places the command in a new process group whose id is
// the child's pid, so a signal to -pid reaches every descendant that has
// not moved to its own group.
func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.SysProcAttr.Pgid = 0
}

// signalGroup sends sig to every process in group pgid.
func signalGroup(pgid int, sig os.Signal) error {
	return unix.Kill(-pgid, toUnix(sig))
}

// raise sends sig to this process.
func raise(sig os.Signal) {
	_ = unix.Kill(unix.Getpid(), toUnix(sig))
}

func isNoSuchProcess(err error) bool {
	return errors.Is(err, unix.ESRCH)
}

func signalNumber(sig os.Signal) int {
	return int(toUnix(sig))
}

func toUnix(sig os.Signal) unix.Signal {
	if s, ok := sig.(syscall.Signal); ok {
		return s
	}
	return unix.SIGTERM
}

// exitStatus decodes a finished process into an exit code and, when the
// process was killed by a signal, that signal. Killed processes report
// 128+signum like a shell would.
func exitStatus(ps *os.ProcessState) (int, os.Signal) {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), ws.Signal()
	}
	return ps.ExitCode(), nil
}
