// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskrunner

import "fmt"

// TaskError is returned by Program.Run when a task handler fails.
type TaskError struct {
	// Task is the name of the failing task.
	Task string
	// Args is the argument object the handler was invoked with.
	Args *Args
	// Positional is the positional arguments of the invocation.
	Positional []string
	// Err is the handler error.
	Err error
}

func newTaskError(args *Args, err error) *TaskError {
	return &TaskError{
		Task:       args.Task,
		Args:       args,
		Positional: args.Positional,
		Err:        err,
	}
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Err)
}

// Unwrap returns the handler error.
func (e *TaskError) Unwrap() error {
	return e.Err
}
