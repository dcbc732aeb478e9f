package cli

import (
	"errors"
	"fmt"
)

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitError ends a command with Code. The command has already reported the
// reason, so Silent errors print nothing further.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Reason
}

// Silent reports whether the error message should be suppressed.
func (e *ExitError) Silent() bool {
	return e.Reason == ""
}

// NewExitError creates an ExitError with no message.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit status: 0 for nil, the ExitError code
// when one is in the chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
