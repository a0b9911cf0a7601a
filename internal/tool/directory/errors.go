package directory

import (
	"errors"
	"fmt"
)

// -- Error Types --

// FileMissingError is returned when the start path of a walk does not exist.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("path does not exist: %s", e.Path)
}
func (e *FileMissingError) Is(target error) bool { return target == ErrFileMissing }
func (e *FileMissingError) FileMissing() bool    { return true }

// NotADirectoryError is returned when the start path of a walk is not a directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}
func (e *NotADirectoryError) Is(target error) bool { return target == ErrNotADirectory }
func (e *NotADirectoryError) InvalidInput() bool   { return true }

// ListDirError is returned when the start directory cannot be read.
type ListDirError struct {
	Path  string
	Cause error
}

func (e *ListDirError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Cause)
}
func (e *ListDirError) Unwrap() error { return e.Cause }
func (e *ListDirError) IOError() bool { return true }

// -- Sentinels --

var (
	ErrFileMissing   = errors.New("file or path does not exist")
	ErrNotADirectory = errors.New("not a directory")
)
