// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"github.com/matt-FFFFFF/shx/cmd/execute"
	"github.com/matt-FFFFFF/shx/cmd/run"
	"github.com/matt-FFFFFF/shx/cmd/testconfig"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
)

// Name is the program name.
const Name = "shx"

// New returns the shx program with all tasks registered.
func New(version string) *taskrunner.Program {
	p := taskrunner.New(Name, version)
	p.Description = `shx runs shell commands in parallel or in series with a concurrency limit.

Commands are given as arguments (exec, sh) or in batch files (run). The first command to
fail, in the order given, fails the whole batch.`

	execute.Register(p)
	run.Register(p)
	testconfig.Register(p)

	return p
}
