//go:build linux

package supervisor

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// restoreDefault sets sig's disposition to SIG_DFL in the kernel. After
// signal.Reset the runtime may still hold its own handler, or an "ignored"
// inherited from the parent, and neither lets a raised signal terminate the
// process. x/sys/unix has no sigaction wrapper, so this calls rt_sigaction
// directly. A zeroed struct is SIG_DFL with no flags and an empty mask on
// every layout.
func restoreDefault(sig os.Signal) error {
	var act [4]uint64
	_, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION,
		uintptr(toUnix(sig)), uintptr(unsafe.Pointer(&act[0])), 0, 8, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
