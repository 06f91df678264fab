// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execute registers the exec and sh tasks, which run the commands given as arguments.
package execute

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/shx/cmd/cmdflags"
	"github.com/matt-FFFFFF/shx/internal/batch"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
	"github.com/matt-FFFFFF/shx/internal/results"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
	"github.com/urfave/cli/v3"
)

const (
	// ExecTask runs each argument as a command.
	ExecTask = "exec"
	// ShTask runs each argument through the system shell.
	ShTask = "sh"

	shellFlag = "shell"
)

// Register adds the exec and sh tasks to p.
func Register(p *taskrunner.Program) {
	p.Task(ExecTask, func(b *taskrunner.TaskBuilder) {
		b.Usage("Run commands given as arguments").
			Describe(`Run each argument as a command.

Commands are started directly unless --shell is given, so shell syntax such as pipes,
globs and $VARIABLES is not interpreted. A direct command is split on whitespace and
quotes are passed through literally; use --shell or the sh task when an argument needs
quoting. Shell builtins such as exit or cd cannot be started directly. Executables
installed in the project are preferred over the system PATH. All commands start at once unless --concurrency is set;
the first failing command, in argument order, fails the task.`).
			Alias("x").
			Flag(slices.Concat(cmdflags.ExecFlags(), cmdflags.OutputFlags())...).
			Flag(&cli.BoolFlag{
				Name:  shellFlag,
				Usage: "Run commands through the system shell",
			}).
			Action(action(p, false))
	})

	p.Task(ShTask, func(b *taskrunner.TaskBuilder) {
		b.Usage("Run commands given as arguments through the system shell").
			Describe(`Run each argument through the system shell (/bin/sh -c, or cmd.exe /C on Windows).

Identical to exec --shell.`).
			Flag(slices.Concat(cmdflags.ExecFlags(), cmdflags.OutputFlags())...).
			Action(action(p, true))
	})
}

func action(p *taskrunner.Program, shell bool) taskrunner.Handler {
	return func(ctx context.Context, args *taskrunner.Args) error {
		opts, err := cmdflags.Options(ctx, args)
		if err != nil {
			return err
		}

		exe := batch.New(procrunner.New())

		var res []*procrunner.Result

		if shell || args.Bool(shellFlag) {
			res, err = exe.Shell(ctx, opts, args.Positional...)
		} else {
			res, err = exe.Execute(ctx, opts, args.Positional...)
		}

		if err != nil {
			ctxlog.Debug(ctx, "batch failed", "error", err)
		}

		entry := results.FromBatch(args.Task, res, err)

		return cmdflags.Report(ctx, p.Writer, results.Entries{entry}, args, err)
	}
}
