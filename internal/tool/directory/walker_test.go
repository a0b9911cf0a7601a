package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/tool/service/fs"
)

// buildTree creates files (and their parents) under root. Paths ending in "/" are directories.
func buildTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		abs := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(abs, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(p), 0o644))
	}
}

func collect(t *testing.T, w *Walker, start string) []string {
	t.Helper()
	var got []string
	err := w.Walk(context.Background(), start, func(e Entry) error {
		got = append(got, e.RelPath)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestWalker_PreOrderLexical(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "b.txt", "a/z.txt", "a/c/d.txt", "c/")

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)
	got := collect(t, w, root)

	want := []string{"a", "a/c", "a/c/d.txt", "a/z.txt", "b.txt", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_PrunesSkipSetAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root,
		"main.py",
		".git/HEAD",
		"node_modules/pkg/index.js",
		"src/app.py",
		"src/__pycache__/app.cpython-312.pyc",
		"src/lib/.venv/bin/python",
		"src/lib/util.py",
	)

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(".git", "node_modules", "__pycache__", ".venv"), nil, nil)
	got := collect(t, w, root)

	want := []string{"main.py", "src", "src/app.py", "src/lib", "src/lib/util.py"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pruned walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_SkipSetOnlyAppliesToDirectories(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, ".DS_Store", "sub/.DS_Store/x")

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(".DS_Store"), nil, nil)
	got := collect(t, w, root)

	if diff := cmp.Diff([]string{".DS_Store", "sub"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_PathsRelativeToProjectRoot(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "pkg/sub/file.go", "other.txt")

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)
	got := collect(t, w, filepath.Join(root, "pkg"))

	if diff := cmp.Diff([]string{"pkg/sub", "pkg/sub/file.go"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_SymlinksEmittedNotFollowed(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	buildTree(t, outside, "secret/inner.txt")
	buildTree(t, root, "real/file.txt")
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret"), filepath.Join(root, "link")))

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)

	var entries []Entry
	require.NoError(t, w.Walk(context.Background(), root, func(e Entry) error {
		entries = append(entries, e)
		return nil
	}))

	require.Len(t, entries, 3)
	assert.Equal(t, "link", entries[0].RelPath)
	assert.False(t, entries[0].IsDir)
	assert.True(t, entries[0].Type&os.ModeSymlink != 0)
	assert.Equal(t, "real", entries[1].RelPath)
	assert.Equal(t, "real/file.txt", entries[2].RelPath)
}

func TestWalker_StartErrors(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "file.txt")
	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)
	noop := func(Entry) error { return nil }

	t.Run("missing", func(t *testing.T) {
		err := w.Walk(context.Background(), filepath.Join(root, "missing"), noop)
		assert.ErrorIs(t, err, ErrFileMissing)
	})

	t.Run("file", func(t *testing.T) {
		err := w.Walk(context.Background(), filepath.Join(root, "file.txt"), noop)
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func TestWalker_CallbackErrorStopsWalk(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "a.txt", "b.txt", "c.txt")
	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)

	stop := errors.New("stop")
	var seen []string
	err := w.Walk(context.Background(), root, func(e Entry) error {
		seen = append(seen, e.RelPath)
		if e.RelPath == "b.txt" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a.txt", "b.txt"}, seen)
}

func TestWalker_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "a.txt")
	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Walk(ctx, root, func(Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

// failingDirReader wraps the OS filesystem and fails ReadDir for selected paths.
type failingDirReader struct {
	*fs.OSFileSystem
	fail map[string]error
}

func (f *failingDirReader) ReadDir(path string) ([]os.DirEntry, error) {
	if err, ok := f.fail[path]; ok {
		return nil, err
	}
	return f.OSFileSystem.ReadDir(path)
}

func TestWalker_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "locked/hidden.txt", "open/visible.txt")

	reader := &failingDirReader{
		OSFileSystem: fs.NewOSFileSystem(),
		fail:         map[string]error{filepath.Join(root, "locked"): os.ErrPermission},
	}
	w := NewWalker(root, reader, NewSkipSet(), nil, nil)
	got := collect(t, w, root)

	if diff := cmp.Diff([]string{"locked", "open", "open/visible.txt"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_UnreadableStartIsAnError(t *testing.T) {
	root := t.TempDir()
	reader := &failingDirReader{
		OSFileSystem: fs.NewOSFileSystem(),
		fail:         map[string]error{root: os.ErrPermission},
	}
	w := NewWalker(root, reader, NewSkipSet(), nil, nil)

	err := w.Walk(context.Background(), root, func(Entry) error { return nil })
	var listErr *ListDirError
	require.ErrorAs(t, err, &listErr)
	assert.True(t, listErr.IOError())
}

type stubIgnore map[string]bool

func (s stubIgnore) ShouldIgnore(rel string, isDir bool) bool { return s[rel] }

func TestWalker_IgnoreMatcherPrunes(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "build/out.bin", "keep.txt", "debug.log")

	w := NewWalker(root, fs.NewOSFileSystem(), NewSkipSet(), stubIgnore{"build": true, "debug.log": true}, nil)
	got := collect(t, w, root)

	assert.Equal(t, []string{"keep.txt"}, got)
}

func TestSkipSet(t *testing.T) {
	s := NewSkipSet(".git", "node_modules", ".git")

	assert.True(t, s.Contains(".git"))
	assert.True(t, s.Contains("node_modules"))
	assert.False(t, s.Contains("src"))
	assert.False(t, s.Contains(".Git"))
	assert.Equal(t, []string{".git", "node_modules"}, s.Names())

	var empty SkipSet
	assert.False(t, empty.Contains("anything"))
}
