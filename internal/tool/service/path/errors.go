package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error      { return e.Cause }
func (e *WorkspaceRootError) InvalidInput() bool { return true }

// OutsideWorkspaceError is returned when a path resolves outside the workspace root,
// either lexically or through a symlink.
type OutsideWorkspaceError struct {
	Path string
}

func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("path %q is outside workspace root", e.Path)
}
func (e *OutsideWorkspaceError) Is(target error) bool { return target == ErrOutsideWorkspace }
func (e *OutsideWorkspaceError) InvalidInput() bool   { return true }

// -- Sentinels --

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
