package shell

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/executor"
	"go.uber.org/zap"
)

// blockedExitCode is the exit code reported for commands rejected by the policy.
const blockedExitCode = 1

// ShellTool executes commands on the local machine.
type ShellTool struct {
	commandExecutor commandExecutor
	fs              dirStater
	pathResolver    pathResolver
	policy          *CommandPolicy
	config          *config.Config
	logger          *zap.Logger
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(
	commandExecutor commandExecutor,
	fs dirStater,
	pathResolver pathResolver,
	policy *CommandPolicy,
	cfg *config.Config,
	logger *zap.Logger,
) *ShellTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if policy == nil {
		panic("policy is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShellTool{
		commandExecutor: commandExecutor,
		fs:              fs,
		pathResolver:    pathResolver,
		policy:          policy,
		config:          cfg,
		logger:          logger,
	}
}

// Run executes req.Command through the configured shell in the working directory.
//
// The policy is checked before anything else touches the filesystem: a blocked
// command returns a normal result and nothing is spawned. A command that runs
// past the configured timeout is terminated and a TimeoutError is returned
// without a result.
func (t *ShellTool) Run(ctx context.Context, req ShellRequest) (*CommandResult, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, &CommandRequiredError{}
	}

	if blocked, pattern := t.policy.Blocked(req.Command); blocked {
		t.logger.Info("command blocked", zap.String("command", req.Command), zap.String("pattern", pattern))
		return &CommandResult{
			Stdout:   "",
			Stderr:   t.policy.Message(),
			ExitCode: blockedExitCode,
			Blocked:  true,
		}, nil
	}

	wdAbs, err := t.resolveWorkingDir(req.WorkingDir)
	if err != nil {
		return nil, err
	}

	command := append(append([]string(nil), t.config.Tools.Shell...), req.Command)
	timeout := time.Duration(t.config.Tools.CommandTimeoutSeconds) * time.Second

	result, err := t.commandExecutor.RunWithTimeout(ctx, command, wdAbs, nil, timeout)
	if err != nil {
		if errors.Is(err, executor.ErrTimeout) {
			t.logger.Warn("command timed out", zap.String("command", req.Command), zap.Duration("timeout", timeout))
			if result != nil {
				t.logger.Debug("partial output of timed out command",
					zap.String("stdout", result.Stdout),
					zap.String("stderr", result.Stderr),
				)
			}
			return nil, &TimeoutError{Command: req.Command, Duration: timeout}
		}
		return nil, err
	}

	t.logger.Debug("command finished", zap.String("command", req.Command), zap.Int("exit_code", result.ExitCode))

	return &CommandResult{
		Stdout:    result.Stdout,
		Stderr:    result.Stderr,
		ExitCode:  result.ExitCode,
		Truncated: result.Truncated,
	}, nil
}

func (t *ShellTool) resolveWorkingDir(workingDir string) (string, error) {
	if workingDir == "" {
		workingDir = "."
	}

	abs, err := t.pathResolver.Abs(workingDir)
	if err != nil {
		return "", err
	}
	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return "", err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &WorkingDirMissingError{Path: rel}
		}
		return "", &StatError{Path: rel, Cause: err}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: rel}
	}
	return abs, nil
}
