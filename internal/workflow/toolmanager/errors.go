package toolmanager

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownToolError is returned when a call names a tool that is not registered.
type UnknownToolError struct {
	Name      string
	Available []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool %q does not exist (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }
func (e *UnknownToolError) InvalidInput() bool   { return true }

// InvalidArgumentsError is returned when call arguments fail schema validation or decoding.
type InvalidArgumentsError struct {
	Tool     string
	Problems []string
	Cause    error
}

func (e *InvalidArgumentsError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("invalid arguments for tool %q: %s", e.Tool, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("invalid arguments for tool %q: %v", e.Tool, e.Cause)
}
func (e *InvalidArgumentsError) Unwrap() error        { return e.Cause }
func (e *InvalidArgumentsError) Is(target error) bool { return target == ErrInvalidArguments }
func (e *InvalidArgumentsError) InvalidInput() bool   { return true }

// SchemaError is returned by Register when a declaration's parameters are not a valid JSON schema.
type SchemaError struct {
	Tool  string
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid parameter schema for tool %q: %v", e.Tool, e.Cause)
}
func (e *SchemaError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)
