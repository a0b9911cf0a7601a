package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver provides path resolution within a workspace boundary.
// The root is fixed at construction and never changes.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
// The root should already be canonical (see CanonicaliseRoot).
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: filepath.Clean(workspaceRoot),
	}
}

// Root returns the canonical workspace root.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// Relative paths are joined onto the root; absolute paths are accepted only when they
// already lie inside it. An empty path means the root itself.
//
// After the lexical check, the deepest existing ancestor inside the root is resolved
// through symlinks so that a link pointing outside the workspace cannot be used to escape.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" || r.workspaceRoot == "." {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	if !r.contains(abs) {
		return "", &OutsideWorkspaceError{Path: path}
	}

	if err := r.checkSymlinks(abs); err != nil {
		return "", &OutsideWorkspaceError{Path: path}
	}

	return abs, nil
}

// Rel resolves any path to relative to the workspace root and validates it is within the boundary.
// The root itself is returned as "".
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", &OutsideWorkspaceError{Path: path}
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// contains reports whether abs is the root itself or a child of the root.
func (r *Resolver) contains(abs string) bool {
	if abs == r.workspaceRoot {
		return true
	}
	prefix := r.workspaceRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}

// checkSymlinks walks up from abs to the root and evaluates the first existing ancestor.
// Paths that don't exist yet (e.g. a file about to be written) are checked through
// their nearest existing parent.
func (r *Resolver) checkSymlinks(abs string) error {
	for p := abs; p != r.workspaceRoot && r.contains(p); p = filepath.Dir(p) {
		if _, err := os.Lstat(p); err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			// Dangling link or unreadable component: the lexical check already passed
			// and any later open will fail on its own.
			return nil
		}
		if !r.contains(resolved) {
			return ErrOutsideWorkspace
		}
		return nil
	}
	return nil
}
