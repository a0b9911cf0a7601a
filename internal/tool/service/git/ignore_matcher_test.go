package git

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFileSystem is a local in-memory fileSystem for testing
type mockFileSystem struct {
	files   map[string][]byte
	readErr error
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		files: make(map[string][]byte),
	}
}

func (m *mockFileSystem) createFile(path string, content []byte) {
	m.files[path] = content
}

func (m *mockFileSystem) Stat(path string) (os.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFileSystem) ReadFile(path string, maxSize int64) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func TestLoadGitignore(t *testing.T) {
	workspaceRoot := "/workspace"

	t.Run("load gitignore from workspace root", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("*.log\n*.tmp\n"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)
		require.NotNil(t, matcher)

		assert.True(t, matcher.ShouldIgnore("test.log", false))
		assert.True(t, matcher.ShouldIgnore("file.tmp", false))
		assert.False(t, matcher.ShouldIgnore("test.txt", false))
	})

	t.Run("non-existent gitignore should not error", func(t *testing.T) {
		matcher, err := NewIgnoreMatcher(workspaceRoot, newMockFileSystem())
		require.NoError(t, err)
		require.NotNil(t, matcher)

		assert.False(t, matcher.ShouldIgnore("test.log", false))
	})

	t.Run("comments and blank lines", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("# logs\n\n   \n*.log\n"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("app.log", false))
		assert.False(t, matcher.ShouldIgnore("# logs", false))
	})

	t.Run("dotfiles matching gitignore patterns", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("*.log\n"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore(".test.log", false))
		assert.False(t, matcher.ShouldIgnore(".keep", false))
	})
}

func TestNewIgnoreMatcherErrors(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.gitignore", []byte("*.log"))
	fs.readErr = errors.New("disk failure")

	_, err := NewIgnoreMatcher("/workspace", fs)
	var gitErr *GitignoreReadError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "/workspace/.gitignore", gitErr.Path)
}

func TestShouldIgnoreLogic(t *testing.T) {
	workspaceRoot := "/workspace"

	t.Run("WindowsLineEndings", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("*.log\r\nnode_modules\r\n"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("app.log", false))
		assert.True(t, matcher.ShouldIgnore("node_modules/foo", false))
	})

	t.Run("DirectoryOnlyPattern", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("build/\n"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("build", true))
		assert.False(t, matcher.ShouldIgnore("build", false))
		assert.True(t, matcher.ShouldIgnore("build/out.bin", false))
	})

	t.Run("PathNormalization", func(t *testing.T) {
		fs := newMockFileSystem()
		fs.createFile("/workspace/.gitignore", []byte("*.log"))

		matcher, err := NewIgnoreMatcher(workspaceRoot, fs)
		require.NoError(t, err)

		assert.True(t, matcher.ShouldIgnore("foo//bar.log", false))
		assert.True(t, matcher.ShouldIgnore("./baz.log", false))
		assert.False(t, matcher.ShouldIgnore("", true))
	})
}
