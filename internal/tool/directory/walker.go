package directory

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Entry is a single file or directory visited by a Walker.
type Entry struct {
	// RelPath is slash-separated and relative to the project root.
	RelPath string
	AbsPath string
	IsDir   bool
	// Type holds the entry's mode type bits. Symlinks are reported, never followed.
	Type fs.FileMode
}

// WalkFunc is called for every entry the Walker emits.
// Returning an error stops the walk and the error is returned from Walk.
type WalkFunc func(Entry) error

// Walker performs a pre-order depth-first traversal below the project root.
// Children are visited in lexical order. Directories named in the SkipSet are
// pruned before descent and never emitted. Subdirectories that cannot be read
// are emitted but not descended into.
type Walker struct {
	projectRoot string
	fs          dirReader
	skip        SkipSet
	ignore      ignoreMatcher
	logger      *zap.Logger
}

// NewWalker creates a Walker. ignore may be nil to disable .gitignore pruning.
func NewWalker(projectRoot string, fs dirReader, skip SkipSet, ignore ignoreMatcher, logger *zap.Logger) *Walker {
	if projectRoot == "" {
		panic("projectRoot is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		projectRoot: projectRoot,
		fs:          fs,
		skip:        skip,
		ignore:      ignore,
		logger:      logger,
	}
}

// Walk visits every entry below startAbs, which must be an absolute directory
// path already validated against the project root. startAbs itself is not emitted.
func (w *Walker) Walk(ctx context.Context, startAbs string, fn WalkFunc) error {
	info, err := w.fs.Stat(startAbs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &FileMissingError{Path: w.rel(startAbs)}
		}
		return &ListDirError{Path: w.rel(startAbs), Cause: err}
	}
	if !info.IsDir() {
		return &NotADirectoryError{Path: w.rel(startAbs)}
	}

	entries, err := w.fs.ReadDir(startAbs)
	if err != nil {
		return &ListDirError{Path: w.rel(startAbs), Cause: err}
	}
	return w.walkEntries(ctx, startAbs, entries, fn)
}

func (w *Walker) walkDir(ctx context.Context, dirAbs string, fn WalkFunc) error {
	entries, err := w.fs.ReadDir(dirAbs)
	if err != nil {
		w.logger.Debug("skipping unreadable directory", zap.String("path", w.rel(dirAbs)), zap.Error(err))
		return nil
	}
	return w.walkEntries(ctx, dirAbs, entries, fn)
}

func (w *Walker) walkEntries(ctx context.Context, dirAbs string, entries []os.DirEntry, fn WalkFunc) error {
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		isDir := de.IsDir()
		if isDir && w.skip.Contains(de.Name()) {
			continue
		}

		abs := filepath.Join(dirAbs, de.Name())
		rel := w.rel(abs)
		if w.ignore != nil && w.ignore.ShouldIgnore(rel, isDir) {
			continue
		}

		if err := fn(Entry{RelPath: rel, AbsPath: abs, IsDir: isDir, Type: de.Type()}); err != nil {
			return err
		}

		if isDir {
			if err := w.walkDir(ctx, abs, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// rel converts an absolute path below the project root to a slash-separated relative path.
func (w *Walker) rel(abs string) string {
	rel, err := filepath.Rel(w.projectRoot, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
