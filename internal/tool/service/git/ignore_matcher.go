package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// maxGitignoreSize bounds how much of a .gitignore is read.
const maxGitignoreSize = 1 << 20

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }
func (e *GitignoreReadError) IOError() bool { return true }

// fileSystem defines the minimal filesystem interface needed by the matcher.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, maxSize int64) ([]byte, error)
}

// IgnoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
// Only the .gitignore at the project root is consulted.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher creates a new gitignore matcher by loading .gitignore from the project root.
// Returns a matcher that never ignores if .gitignore doesn't exist (no error).
func NewIgnoreMatcher(projectRoot string, fs fileSystem) (*IgnoreMatcher, error) {
	if projectRoot == "" {
		panic("projectRoot is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	gitignorePath := filepath.Join(projectRoot, ".gitignore")

	if _, err := fs.Stat(gitignorePath); err != nil {
		return &IgnoreMatcher{}, nil
	}

	content, err := fs.ReadFile(gitignorePath, maxGitignoreSize)
	if err != nil {
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &IgnoreMatcher{}, nil
	}

	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks if a slash-separated path relative to the project root
// matches the loaded patterns. Returns false if no .gitignore was loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}

	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	normalized := filepath.ToSlash(path)

	var segments []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
