package shell

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError is returned when a shell command exceeds its timeout.
// The process group has been terminated by the time it is returned.
type TimeoutError struct {
	Command  string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("shell command %q timed out after %v", e.Command, e.Duration)
}
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
func (e *TimeoutError) Timeout() bool        { return true }

// CommandRequiredError is returned when a command is missing.
type CommandRequiredError struct{}

func (e *CommandRequiredError) Error() string      { return "command cannot be empty" }
func (e *CommandRequiredError) InvalidInput() bool { return true }

// WorkingDirMissingError is returned when the working directory does not exist.
type WorkingDirMissingError struct {
	Path string
}

func (e *WorkingDirMissingError) Error() string {
	return fmt.Sprintf("working directory does not exist: %s", e.Path)
}
func (e *WorkingDirMissingError) FileMissing() bool { return true }

// NotADirectoryError is returned when the working directory is a file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("working directory is not a directory: %s", e.Path)
}
func (e *NotADirectoryError) InvalidInput() bool { return true }

type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat working directory %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
func (e *StatError) IOError() bool { return true }

// -- Sentinels --

var ErrTimeout = errors.New("command timed out")
