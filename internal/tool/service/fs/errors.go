package fs

import (
	"fmt"
	"os"
)

// -- Errors --
//
// Every error here reports IOError so that callers can classify it without
// knowing the concrete step that failed.

type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file %s is %d bytes, exceeds limit of %d bytes", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) IOError() bool { return true }

type NotWritableError struct {
	Path  string
	Cause error
}

func (e *NotWritableError) Error() string {
	return fmt.Sprintf("file %s is not writable: %v", e.Path, e.Cause)
}
func (e *NotWritableError) Unwrap() error { return e.Cause }
func (e *NotWritableError) IOError() bool { return true }

type TempFileError struct {
	Dir   string
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to create temp file in %s: %v", e.Dir, e.Cause)
}
func (e *TempFileError) Unwrap() error { return e.Cause }
func (e *TempFileError) IOError() bool { return true }

type TempWriteError struct {
	Path  string
	Cause error
}

func (e *TempWriteError) Error() string {
	return fmt.Sprintf("failed to write to temp file %s: %v", e.Path, e.Cause)
}
func (e *TempWriteError) Unwrap() error { return e.Cause }
func (e *TempWriteError) IOError() bool { return true }

type TempSyncError struct {
	Path  string
	Cause error
}

func (e *TempSyncError) Error() string {
	return fmt.Sprintf("failed to sync temp file %s: %v", e.Path, e.Cause)
}
func (e *TempSyncError) Unwrap() error { return e.Cause }
func (e *TempSyncError) IOError() bool { return true }

type TempCloseError struct {
	Path  string
	Cause error
}

func (e *TempCloseError) Error() string {
	return fmt.Sprintf("failed to close temp file %s: %v", e.Path, e.Cause)
}
func (e *TempCloseError) Unwrap() error { return e.Cause }
func (e *TempCloseError) IOError() bool { return true }

type RenameError struct {
	Old   string
	New   string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.Old, e.New, e.Cause)
}
func (e *RenameError) Unwrap() error { return e.Cause }
func (e *RenameError) IOError() bool { return true }

type ChmodError struct {
	Path  string
	Mode  os.FileMode
	Cause error
}

func (e *ChmodError) Error() string {
	return fmt.Sprintf("failed to set permissions for %s to %v: %v", e.Path, e.Mode, e.Cause)
}
func (e *ChmodError) Unwrap() error { return e.Cause }
func (e *ChmodError) IOError() bool { return true }
