package agent

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/config"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/errutil"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/search"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/path"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/shell"
)

func newTestTools(t *testing.T, cfg *config.Config) (*Tools, string) {
	t.Helper()
	root := t.TempDir()
	tools, err := New(root, cfg, nil)
	require.NoError(t, err)
	return tools, tools.Root()
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func TestNew_InvalidRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, nil)
	require.Error(t, err)

	f := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	_, err = New(f, nil, nil)
	require.Error(t, err)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.CommandTimeoutSeconds = 0

	_, err := New(t.TempDir(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command_timeout_seconds")
}

func TestWriteThenRead_RoundTrip(t *testing.T) {
	tools, _ := newTestTools(t, nil)
	ctx := context.Background()

	content := "héllo\nwörld\n"
	resp, err := tools.WriteFile(ctx, "notes.txt", content)
	require.NoError(t, err)
	assert.True(t, resp.Created)

	got, err := tools.ReadFile(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	tools, root := newTestTools(t, nil)
	ctx := context.Background()

	_, err := tools.WriteFile(ctx, "a/b/c.txt", "deep")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	got, err := tools.ReadFile(ctx, "a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "deep", got)
}

func TestReadFile_Errors(t *testing.T) {
	tools, root := newTestTools(t, nil)
	ctx := context.Background()
	writeFixture(t, root, "bin.dat", "\xff\xfe\x00")

	_, err := tools.ReadFile(ctx, "missing.txt")
	assert.Equal(t, errutil.KindNotFound, errutil.KindOf(err))

	_, err = tools.ReadFile(ctx, "bin.dat")
	assert.Equal(t, errutil.KindDecode, errutil.KindOf(err))

	_, err = tools.ReadFile(ctx, "../outside.txt")
	assert.ErrorIs(t, err, path.ErrOutsideWorkspace)
	assert.Equal(t, errutil.KindInvalidArgument, errutil.KindOf(err))
}

func TestSeeFileTree_PrunesSkipDirsAtAnyDepth(t *testing.T) {
	tools, root := newTestTools(t, nil)
	writeFixture(t, root, "main.go", "package main")
	writeFixture(t, root, ".git/HEAD", "ref")
	writeFixture(t, root, "src/app.go", "package src")
	writeFixture(t, root, "src/node_modules/lib/index.js", "x")
	writeFixture(t, root, "src/deep/__pycache__/m.pyc", "x")

	entries, err := tools.SeeFileTree(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "src", "src/app.go", "src/deep"}, entries)

	entries, err = tools.SeeFileTree(context.Background(), "src")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.go", "src/deep"}, entries)
}

func TestSeeFileTree_RespectsGitignore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.RespectGitignore = true
	root := t.TempDir()
	writeFixture(t, root, ".gitignore", "build/\n*.log\n")
	writeFixture(t, root, "build/out.bin", "x")
	writeFixture(t, root, "debug.log", "x")
	writeFixture(t, root, "keep.txt", "x")

	tools, err := New(root, cfg, nil)
	require.NoError(t, err)

	entries, err := tools.SeeFileTree(context.Background(), ".")
	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "keep.txt"}, entries)
}

func TestSearchInFiles(t *testing.T) {
	tools, root := newTestTools(t, nil)
	writeFixture(t, root, "a.txt", "alpha\nTODO one\nbeta\n")
	writeFixture(t, root, "b/c.txt", "  TODO two  \n")
	writeFixture(t, root, "bad.bin", "TODO \xff\n")
	writeFixture(t, root, "node_modules/x.js", "TODO hidden\n")

	resp, err := tools.SearchInFiles(context.Background(), "TODO", "")
	require.NoError(t, err)
	assert.Equal(t, []search.Match{
		{Path: "a.txt", LineNumber: 2, Line: "TODO one"},
		{Path: "b/c.txt", LineNumber: 1, Line: "TODO two"},
	}, resp.Matches)
	assert.Equal(t, 1, resp.SkippedFiles)

	resp, err = tools.SearchInFiles(context.Background(), "", "b")
	require.NoError(t, err)
	assert.Equal(t, []search.Match{{Path: "b/c.txt", LineNumber: 1, Line: "TODO two"}}, resp.Matches)
}

func TestExecuteBashCommand_Echo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	tools, _ := newTestTools(t, nil)

	res, err := tools.ExecuteBashCommand(context.Background(), "echo hi", "")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", res.Stdout)
	assert.Equal(t, "", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecuteBashCommand_WorkingDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	tools, root := newTestTools(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	res, err := tools.ExecuteBashCommand(context.Background(), "pwd", "sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub")+"\n", res.Stdout)

	_, err = tools.ExecuteBashCommand(context.Background(), "pwd", "../..")
	assert.Equal(t, errutil.KindInvalidArgument, errutil.KindOf(err))
}

func TestExecuteBashCommand_Blocked(t *testing.T) {
	tools, root := newTestTools(t, nil)

	res, err := tools.ExecuteBashCommand(context.Background(), "python manage.py runserver > started.txt", "")
	require.NoError(t, err)
	assert.Equal(t, &shell.CommandResult{
		Stdout:   "",
		Stderr:   config.DefaultConfig().Tools.BlockedCommandMessage,
		ExitCode: 1,
		Blocked:  true,
	}, res)

	_, statErr := os.Stat(filepath.Join(root, "started.txt"))
	assert.True(t, os.IsNotExist(statErr), "blocked command must not run")
}

func TestExecuteBashCommand_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	cfg := config.DefaultConfig()
	cfg.Tools.CommandTimeoutSeconds = 1
	cfg.Tools.GracefulShutdownMs = 100
	tools, _ := newTestTools(t, cfg)

	res, err := tools.ExecuteBashCommand(context.Background(), "sleep 10", "")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, shell.ErrTimeout)
	assert.Equal(t, errutil.KindTimeout, errutil.KindOf(err))
}
