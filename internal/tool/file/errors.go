package file

import (
	"errors"
	"fmt"
)

// -- Error Types --

// FileMissingError is returned when the file to read does not exist.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string        { return fmt.Sprintf("file does not exist: %s", e.Path) }
func (e *FileMissingError) Is(target error) bool { return target == ErrFileMissing }
func (e *FileMissingError) FileMissing() bool    { return true }

type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string        { return fmt.Sprintf("path is a directory: %s", e.Path) }
func (e *IsDirectoryError) Is(target error) bool { return target == ErrIsDirectory }
func (e *IsDirectoryError) IOError() bool        { return true }

type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string { return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause) }
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string { return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause) }
func (e *ReadError) Unwrap() error { return e.Cause }
func (e *ReadError) IOError() bool { return true }

// DecodeError is returned when a file is not valid UTF-8 text.
type DecodeError struct {
	Path   string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("file %s is not valid UTF-8 (first invalid byte at offset %d)", e.Path, e.Offset)
}
func (e *DecodeError) Is(target error) bool { return target == ErrNotUTF8 }
func (e *DecodeError) DecodeError() bool    { return true }

type EnsureDirsError struct {
	Path  string
	Cause error
}

func (e *EnsureDirsError) Error() string {
	return fmt.Sprintf("failed to create parent directories %s: %v", e.Path, e.Cause)
}
func (e *EnsureDirsError) Unwrap() error { return e.Cause }
func (e *EnsureDirsError) IOError() bool { return true }

type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string { return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause) }
func (e *WriteError) Unwrap() error { return e.Cause }
func (e *WriteError) IOError() bool { return true }

// -- Sentinels --

var (
	ErrFileMissing = errors.New("file or path does not exist")
	ErrIsDirectory = errors.New("path is a directory")
	ErrNotUTF8     = errors.New("file is not valid UTF-8")
)
