package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
// Each command runs in its own process group so a timeout can take down everything it started.
type OSCommandExecutor struct {
	config *config.Config
	logger *zap.Logger
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config, logger *zap.Logger) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OSCommandExecutor{config: cfg, logger: logger}
}

// RunWithTimeout executes a command with a timeout and graceful shutdown.
//
// A nil env inherits the current environment. Stdin is the null device.
// A non-zero exit is not an error: it is reported in Result.ExitCode, which is
// minus the signal number when the child was killed by a signal.
// On timeout the process group is interrupted, killed after the configured
// grace period, and ErrTimeout is returned along with whatever output was captured.
// If ctx is cancelled first, the group is killed and ctx.Err() is returned.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	// We don't use CommandContext here because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	setProcessGroup(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	f.logger.Debug("command started",
		zap.Strings("command", command),
		zap.String("dir", dir),
		zap.Int("pid", cmd.Process.Pid),
		zap.Duration("timeout", timeout),
	)

	maxBytes := f.config.Tools.MaxCommandOutputSize
	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	// Pipes must be drained before Wait closes them.
	done := make(chan error, 1)
	go func() {
		var g errgroup.Group
		g.Go(func() error {
			_, err := io.Copy(stdout, stdoutPipe)
			return err
		})
		g.Go(func() error {
			_, err := io.Copy(stderr, stderrPipe)
			return err
		})
		copyErr := g.Wait()
		waitErr := cmd.Wait()
		if waitErr == nil && copyErr != nil {
			waitErr = &CommandError{Cmd: command[0], Cause: copyErr, Stage: "output"}
		}
		done <- waitErr
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	grace := time.Duration(f.config.Tools.GracefulShutdownMs) * time.Millisecond

	var execErr error
	select {
	case execErr = <-done:
	case <-ctx.Done():
		_ = killGroup(cmd.Process)
		f.awaitExit(done, grace, stdoutPipe, stderrPipe)
		return nil, ctx.Err()
	case <-timer.C:
		f.logger.Debug("command timed out, interrupting", zap.Int("pid", cmd.Process.Pid))
		_ = interruptGroup(cmd.Process)
		graceTimer := time.NewTimer(grace)
		select {
		case <-done:
		case <-graceTimer.C:
			f.logger.Debug("command ignored interrupt, killing", zap.Int("pid", cmd.Process.Pid))
			_ = killGroup(cmd.Process)
			f.awaitExit(done, grace, stdoutPipe, stderrPipe)
		}
		graceTimer.Stop()
		return &Result{
			Stdout:    stdout.String(),
			Stderr:    stderr.String(),
			ExitCode:  -1,
			Truncated: stdout.Truncated() || stderr.Truncated(),
		}, ErrTimeout
	}

	if execErr != nil {
		if _, ok := execErr.(*exec.ExitError); !ok {
			return nil, execErr
		}
	}

	return &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(cmd.ProcessState),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}, nil
}

// awaitExit waits for the reader goroutine after a kill. A grandchild that left
// the process group can keep the pipes open, so the read ends are closed if the
// goroutine has not finished within the grace period.
func (f *OSCommandExecutor) awaitExit(done <-chan error, grace time.Duration, pipes ...io.Closer) {
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-done:
		return
	case <-t.C:
	}
	for _, p := range pipes {
		_ = p.Close()
	}
	<-done
}
