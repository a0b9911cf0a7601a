//go:build !unix

package executor

import (
	"os"
	"os/exec"
)

func setProcessGroup(cmd *exec.Cmd) {}

func interruptGroup(p *os.Process) error {
	return p.Signal(os.Interrupt)
}

func killGroup(p *os.Process) error {
	return p.Kill()
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	return state.ExitCode()
}
