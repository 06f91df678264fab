// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrunner

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyCommand is returned when the command string is blank.
	ErrEmptyCommand = errors.New("empty command")
	// ErrNonZeroExit is the cause of an ExecError for a non-zero exit code.
	ErrNonZeroExit = errors.New("non-zero exit code")
	// ErrTimeout is the cause of an ExecError for a command that exceeded its timeout.
	ErrTimeout = errors.New("timeout exceeded")
	// ErrKilled is the cause of an ExecError for a command terminated by a signal.
	ErrKilled = errors.New("process killed")
	// ErrCouldNotStart is the cause of an ExecError for a command that never started.
	ErrCouldNotStart = errors.New("could not start process")
)

// Result is the outcome of one command.
type Result struct {
	Command  string        // The command as given.
	ExitCode int           // -1 when the process did not exit normally.
	Stdout   string        // Captured stdout, trailing newline removed.
	Stderr   string        // Captured stderr, trailing newline removed.
	Killed   bool          // Terminated by a signal.
	Signal   string        // Description of the terminating signal, if any.
	TimedOut bool          // Stopped because Options.Timeout elapsed.
	Duration time.Duration // Wall time from start to exit.
}

// Failed reports whether the result represents a failed command.
func (r *Result) Failed() bool {
	return r.ExitCode != 0 || r.Killed || r.TimedOut
}

// ExecError describes a failed command. It carries the full Result.
type ExecError struct {
	Result
	Message string // Human readable summary.
	Err     error  // One of the Err* causes, possibly joined with a lower level error.
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return e.Message
}

// Unwrap returns the cause.
func (e *ExecError) Unwrap() error {
	return e.Err
}

func newExecError(res *Result, cause, startErr error, timeout time.Duration) *ExecError {
	var msg string

	switch {
	case startErr != nil:
		msg = fmt.Sprintf("Command failed to start: %s: %v", res.Command, startErr)
	case res.TimedOut:
		msg = fmt.Sprintf("Command timed out after %s: %s", timeout, res.Command)
	case res.Killed:
		msg = fmt.Sprintf("Command was killed with %s: %s", res.Signal, res.Command)
	default:
		msg = fmt.Sprintf("Command failed with exit code %d: %s", res.ExitCode, res.Command)
	}

	return &ExecError{
		Result:  *res,
		Message: msg,
		Err:     cause,
	}
}
