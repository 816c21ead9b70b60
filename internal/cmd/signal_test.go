//go:build !windows

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/henchman/internal/config"
)

const composeHelperEnv = "HENCHMAN_CMD_HELPER"

// TestHelperCompose is not a real test. TestComposeUp_Interrupted re-executes
// the test binary with it to run "compose up" as a separate process.
func TestHelperCompose(t *testing.T) {
	file := os.Getenv(composeHelperEnv)
	if file == "" {
		t.Skip("helper process only")
	}
	rootCmd.SetArgs([]string{"compose", "up", "-f", file})
	os.Exit(Execute())
}

func TestComposeUp_Interrupted(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			if signal.Ignored(sig) {
				t.Skipf("%v is ignored by the test runner", sig)
			}

			dir := workdir(t)
			file := writeFile(t, filepath.Join(dir, "compose.yml"), "services:\n  web:\n    image: nginx:latest\n")

			// The engine records its pid and then becomes a long-running container.
			bin := t.TempDir()
			pidFile := filepath.Join(bin, "engine.pid")
			script := fmt.Sprintf("#!/bin/sh\necho $$ > %[1]s.tmp && mv %[1]s.tmp %[1]s && exec sleep 30\n", pidFile)
			engine := writeFile(t, filepath.Join(bin, "engine"), script)
			require.NoError(t, os.Chmod(engine, 0755))

			var stdout, stderr bytes.Buffer
			helper := exec.Command(os.Args[0], "-test.run=^TestHelperCompose$")
			helper.Dir = dir
			helper.Env = append(os.Environ(), composeHelperEnv+"="+file, config.EnvEngine+"="+engine)
			helper.Stdout = &stdout
			helper.Stderr = &stderr
			require.NoError(t, helper.Start())

			enginePid := readPid(t, pidFile)
			t.Cleanup(func() { _ = syscall.Kill(-enginePid, syscall.SIGKILL) })

			// Forwarding is installed right after the engine starts.
			time.Sleep(200 * time.Millisecond)
			require.NoError(t, helper.Process.Signal(sig))

			waitDone := make(chan error, 1)
			go func() { waitDone <- helper.Wait() }()

			select {
			case err := <-waitDone:
				var ee *exec.ExitError
				require.True(t, errors.As(err, &ee), "henchman exited cleanly; stderr:\n%s", stderr.String())
				ws, ok := ee.Sys().(syscall.WaitStatus)
				require.True(t, ok)
				require.True(t, ws.Signaled(), "henchman should die by signal, got %v; stderr:\n%s", ws, stderr.String())
				assert.Equal(t, sig, ws.Signal())
			case <-time.After(5 * time.Second):
				_ = helper.Process.Kill()
				t.Fatalf("henchman did not terminate; stderr:\n%s", stderr.String())
			}

			assert.Contains(t, stdout.String(), "Starting demo_web_1")
			assert.Eventually(t, func() bool { return exited(enginePid) },
				5*time.Second, 50*time.Millisecond, "engine should receive the forwarded signal")
		})
	}
}

func readPid(t *testing.T, path string) int {
	t.Helper()
	var pid int
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
		return err == nil && pid > 0
	}, 5*time.Second, 20*time.Millisecond, "engine pid never written")
	return pid
}

// exited reports whether pid is gone or a zombie waiting to be reaped.
func exited(pid int) bool {
	if err := syscall.Kill(pid, 0); errors.Is(err, syscall.ESRCH) {
		return true
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return errors.Is(err, os.ErrNotExist)
	}
	rest := string(data)
	if i := strings.LastIndexByte(rest, ')'); i >= 0 {
		rest = rest[i+1:]
	}
	fields := strings.Fields(rest)
	return len(fields) > 0 && fields[0] == "Z"
}
