// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run registers the run task, which executes batch files.
package run

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/shx/cmd/cmdflags"
	"github.com/matt-FFFFFF/shx/cmd/cmdstate"
	"github.com/matt-FFFFFF/shx/internal/batch"
	"github.com/matt-FFFFFF/shx/internal/batchfile"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
	"github.com/matt-FFFFFF/shx/internal/results"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
	"github.com/urfave/cli/v3"
)

const (
	// Task is the name of the run task.
	Task = "run"

	fileFlag        = "file"
	concurrencyFlag = cmdflags.ConcurrencyFlag
)

// ErrNoFiles is returned when no batch file is given.
var ErrNoFiles = errors.New("specify at least one batch file with --file or as an argument")

// Register adds the run task to p.
func Register(p *taskrunner.Program) {
	p.Task(Task, func(b *taskrunner.TaskBuilder) {
		b.Usage("Run batch files").
			Describe(`Run the commands defined in one or more batch files.

Batch files may be YAML, JSON, TOML or HCL and are chosen by extension. In HCL files the
process environment is available as env.NAME.

File URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.

Files run one after another. A failing file does not stop the files after it.`).
			Flag(
				&cli.StringSliceFlag{
					Name:    fileFlag,
					Aliases: []string{"f"},
					Usage:   "URL of a batch file. Specify multiple times to run multiple files",
				},
				&cli.IntFlag{
					Name:    concurrencyFlag,
					Aliases: []string{"c"},
					Usage:   "Override the concurrency of every batch file",
					Value:   -1,
				},
			).
			Flag(cmdflags.OutputFlags()...).
			Action(func(ctx context.Context, args *taskrunner.Args) error {
				return action(ctx, p, args)
			})
	})
}

func action(ctx context.Context, p *taskrunner.Program, args *taskrunner.Args) error {
	srcs := slices.Concat(args.StringSlice(fileFlag), args.Positional)
	if len(srcs) == 0 {
		return ErrNoFiles
	}

	exe := batch.New(procrunner.New())
	entries := make(results.Entries, 0, len(srcs))

	var errs []error

	for _, src := range srcs {
		entry, err := runFile(ctx, exe, src, args)
		if err != nil {
			errs = append(errs, err)
		}

		entries = append(entries, entry)
	}

	return cmdflags.Report(ctx, p.Writer, entries, args, errors.Join(errs...))
}

func runFile(ctx context.Context, exe *batch.Executor, src string, args *taskrunner.Args) (*results.Entry, error) {
	ctx = ctxlog.With(ctx, "file", src)

	f, err := batchfile.Load(ctx, src)
	if err != nil {
		return results.FromBatch(src, nil, err), err
	}

	label := f.Name
	if label == "" {
		label = src
	}

	cmds, opts, err := f.Batch()
	if err != nil {
		return results.FromBatch(label, nil, err), err
	}

	if c := args.Int(concurrencyFlag); c >= 0 {
		opts.Concurrency = c
	}

	if opts.Process.Cwd == "" {
		opts.Process.Cwd = args.Cwd()
	}

	sp, err := cmdstate.SearchPath(ctx, opts.Process.Cwd)
	if err != nil {
		return results.FromBatch(label, nil, err), err
	}

	opts.Process.SearchPath = sp

	ctxlog.Info(ctx, "running batch file", "commands", len(cmds), "concurrency", opts.Concurrency)

	res, err := exe.Execute(ctx, opts, cmds...)
	if err != nil {
		err = fmt.Errorf("%s: %w", label, err)
	}

	return results.FromBatch(label, res, err), err
}
