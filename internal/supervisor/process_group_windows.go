//go:build windows

package supervisor

import (
	"os"
	"os/exec"
)

// Windows has no process groups addressable by signal. The child shares the
// console and receives Ctrl-C directly, so forwarding is a no-op and the
// abort path exits with the conventional interrupt status.

func setProcessGroup(*exec.Cmd) {}

func signalGroup(int, os.Signal) error { return nil }

func raise(os.Signal) {}

func restoreDefault(os.Signal) error { return nil }

func isNoSuchProcess(error) bool { return false }

func signalNumber(sig os.Signal) int {
	if sig == os.Interrupt {
		return 2
	}
	return 15
}

func exitStatus(ps *os.ProcessState) (int, os.Signal) {
	return ps.ExitCode(), nil
}
