// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
)

// BatchError reports the command that failed a batch.
type BatchError struct {
	Index   int    // Position of the command in the filtered input.
	Command string // The failing command.
	Err     error  // Usually a *procrunner.ExecError.
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("batch failed at command %d: %v", e.Index+1, e.Err)
}

// Unwrap returns the failing command's error.
func (e *BatchError) Unwrap() error {
	return e.Err
}
