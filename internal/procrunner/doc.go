// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procrunner spawns a single command, waits for it and reports the outcome.
//
// Process management is delegated to github.com/go-cmd/cmd. A command that exits non-zero,
// is killed or times out yields an *ExecError alongside its *Result.
package procrunner
