//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
	"time"
)

// setProcGroup configures cmd to run in its own process group and sets up
// Cancel/WaitDelay so that hitting the job timeout kills the entire group
// (the sourced shell plus everything the run script spawned) rather than
// only the direct child.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// SIGKILL the whole group (negative PID).
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	// Short grace period for children to drain before their pipe file
	// descriptors are forcibly closed, so partial output survives a kill.
	cmd.WaitDelay = 3 * time.Second
}
