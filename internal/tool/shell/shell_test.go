package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/errutil"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/executor"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/fs"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/path"
)

// mockCommandExecutor records invocations and returns canned results.
type mockCommandExecutor struct {
	calls   [][]string
	dirs    []string
	timeout time.Duration
	result  *executor.Result
	err     error
}

func (m *mockCommandExecutor) RunWithTimeout(ctx context.Context, cmd []string, dir string, env []string, timeout time.Duration) (*executor.Result, error) {
	m.calls = append(m.calls, cmd)
	m.dirs = append(m.dirs, dir)
	m.timeout = timeout
	if m.result == nil && m.err == nil {
		return &executor.Result{}, nil
	}
	return m.result, m.err
}

func newTestRoot(t *testing.T) string {
	t.Helper()
	root, err := path.CanonicaliseRoot(t.TempDir())
	require.NoError(t, err)
	return root
}

func newTool(root string, exec commandExecutor, cfg *config.Config) *ShellTool {
	policy := NewCommandPolicy(cfg.Tools.BlockedCommands, cfg.Tools.BlockedCommandMessage)
	return NewShellTool(exec, fs.NewOSFileSystem(), path.NewResolver(root), policy, cfg, nil)
}

func TestShellTool_BlockedCommandSpawnsNothing(t *testing.T) {
	cfg := config.DefaultConfig()
	mock := &mockCommandExecutor{}
	tool := newTool(newTestRoot(t), mock, cfg)

	commands := []string{
		"python manage.py runserver",
		"cd app && python manage.py runserver 0.0.0.0:8000",
		"python manage.py ｒｕｎｓｅｒｖｅｒ",
	}

	for _, cmd := range commands {
		t.Run(cmd, func(t *testing.T) {
			res, err := tool.Run(context.Background(), ShellRequest{Command: cmd})
			require.NoError(t, err)
			assert.Equal(t, "", res.Stdout)
			assert.Equal(t, cfg.Tools.BlockedCommandMessage, res.Stderr)
			assert.Equal(t, 1, res.ExitCode)
			assert.True(t, res.Blocked)
		})
	}

	assert.Empty(t, mock.calls, "blocked commands must not reach the executor")
}

func TestShellTool_BlockedBeforeWorkingDirResolution(t *testing.T) {
	mock := &mockCommandExecutor{}
	tool := newTool(newTestRoot(t), mock, config.DefaultConfig())

	res, err := tool.Run(context.Background(), ShellRequest{Command: "manage.py runserver", WorkingDir: "../../escape"})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Empty(t, mock.calls)
}

func TestShellTool_PassesShellAndTimeout(t *testing.T) {
	root := newTestRoot(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "app"), 0o755))

	cfg := config.DefaultConfig()
	mock := &mockCommandExecutor{result: &executor.Result{Stdout: "ok\n", ExitCode: 0}}
	tool := newTool(root, mock, cfg)

	res, err := tool.Run(context.Background(), ShellRequest{Command: "ls -la", WorkingDir: "app"})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", res.Stdout)

	require.Len(t, mock.calls, 1)
	assert.Equal(t, []string{"sh", "-c", "ls -la"}, mock.calls[0])
	assert.Equal(t, filepath.Join(root, "app"), mock.dirs[0])
	assert.Equal(t, 15*time.Second, mock.timeout)
}

func TestShellTool_ExecutorTimeoutBecomesTimeoutError(t *testing.T) {
	mock := &mockCommandExecutor{result: &executor.Result{Stdout: "partial", ExitCode: -1}, err: executor.ErrTimeout}
	tool := newTool(newTestRoot(t), mock, config.DefaultConfig())

	res, err := tool.Run(context.Background(), ShellRequest{Command: "sleep 100"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, errutil.KindTimeout, errutil.KindOf(err))
}

func TestShellTool_ExecutorErrorPropagates(t *testing.T) {
	startErr := &executor.CommandError{Cmd: "sh", Stage: "start", Cause: errors.New("no shell")}
	mock := &mockCommandExecutor{err: startErr}
	tool := newTool(newTestRoot(t), mock, config.DefaultConfig())

	_, err := tool.Run(context.Background(), ShellRequest{Command: "true"})
	assert.ErrorIs(t, err, startErr)
	assert.Equal(t, errutil.KindIO, errutil.KindOf(err))
}

func TestShellTool_Errors(t *testing.T) {
	root := newTestRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644))
	mock := &mockCommandExecutor{}
	tool := newTool(root, mock, config.DefaultConfig())

	tests := []struct {
		name string
		req  ShellRequest
		kind errutil.Kind
	}{
		{name: "empty command", req: ShellRequest{Command: ""}, kind: errutil.KindInvalidArgument},
		{name: "whitespace command", req: ShellRequest{Command: "  \t"}, kind: errutil.KindInvalidArgument},
		{name: "cwd escape", req: ShellRequest{Command: "ls", WorkingDir: "../"}, kind: errutil.KindInvalidArgument},
		{name: "cwd missing", req: ShellRequest{Command: "ls", WorkingDir: "missing"}, kind: errutil.KindNotFound},
		{name: "cwd is file", req: ShellRequest{Command: "ls", WorkingDir: "file.txt"}, kind: errutil.KindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errutil.KindOf(err))
		})
	}
	assert.Empty(t, mock.calls)
}

func TestShellTool_RealCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	root := newTestRoot(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	cfg := config.DefaultConfig()
	cfg.Tools.CommandTimeoutSeconds = 1
	cfg.Tools.GracefulShutdownMs = 100
	tool := newTool(root, executor.NewOSCommandExecutor(cfg, nil), cfg)
	ctx := context.Background()

	t.Run("echo", func(t *testing.T) {
		res, err := tool.Run(ctx, ShellRequest{Command: "echo hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Equal(t, "", res.Stderr)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("stderr and exit code", func(t *testing.T) {
		res, err := tool.Run(ctx, ShellRequest{Command: "echo oops >&2; exit 7"})
		require.NoError(t, err)
		assert.Equal(t, "oops\n", res.Stderr)
		assert.Equal(t, 7, res.ExitCode)
	})

	t.Run("working directory", func(t *testing.T) {
		res, err := tool.Run(ctx, ShellRequest{Command: "pwd", WorkingDir: "sub"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "sub")+"\n", res.Stdout)
	})

	t.Run("no state between calls", func(t *testing.T) {
		_, err := tool.Run(ctx, ShellRequest{Command: "cd sub && export AGENTTOOLS_TEST_VAR=1"})
		require.NoError(t, err)

		res, err := tool.Run(ctx, ShellRequest{Command: "pwd; echo ${AGENTTOOLS_TEST_VAR:-unset}"})
		require.NoError(t, err)
		assert.Equal(t, root+"\nunset\n", res.Stdout)
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		res, err := tool.Run(ctx, ShellRequest{Command: "sleep 10"})
		assert.Nil(t, res)
		var timeoutErr *TimeoutError
		require.ErrorAs(t, err, &timeoutErr)
		assert.Equal(t, time.Second, timeoutErr.Duration)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestCommandPolicy(t *testing.T) {
	policy := NewCommandPolicy([]string{"runserver", "rm -rf /"}, "blocked")

	tests := []struct {
		command string
		blocked bool
		pattern string
	}{
		{command: "python manage.py runserver", blocked: true, pattern: "runserver"},
		{command: "python manage.py ｒｕｎｓｅｒｖｅｒ", blocked: true, pattern: "runserver"},
		{command: "sudo rm -rf / --no-preserve-root", blocked: true, pattern: "rm -rf /"},
		{command: "python manage.py migrate", blocked: false},
		{command: "echo run server", blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			blocked, pattern := policy.Blocked(tt.command)
			assert.Equal(t, tt.blocked, blocked)
			assert.Equal(t, tt.pattern, pattern)
		})
	}

	assert.Equal(t, "blocked", policy.Message())

	empty := NewCommandPolicy(nil, "")
	blocked, _ := empty.Blocked("python manage.py runserver")
	assert.False(t, blocked)
}
