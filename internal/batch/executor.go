// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
	"golang.org/x/sync/errgroup"
)

// Executor dispatches commands to a procrunner.Runner.
type Executor struct {
	Runner procrunner.Runner
}

// New returns an Executor using r.
func New(r procrunner.Runner) *Executor {
	return &Executor{Runner: r}
}

var defaultExecutor = New(procrunner.New())

// Exec runs commands with the default executor.
func Exec(ctx context.Context, opts *Options, commands ...string) ([]*procrunner.Result, error) {
	return defaultExecutor.Execute(ctx, opts, commands...)
}

// Sh runs commands through the system shell with the default executor.
func Sh(ctx context.Context, opts *Options, commands ...string) ([]*procrunner.Result, error) {
	return defaultExecutor.Shell(ctx, opts, commands...)
}

// Shell is Execute with shell mode forced on, so commands may use pipes, globs and
// environment variable expansion. opts is not modified.
func (e *Executor) Shell(ctx context.Context, opts *Options, commands ...string) ([]*procrunner.Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	shellOpts := opts.clone()
	shellOpts.Process.Shell = true

	return e.Execute(ctx, shellOpts, commands...)
}

// Execute runs commands and returns one result per non-blank command, in input order.
// A nil opts means DefaultOptions. The commands slice is never modified.
func (e *Executor) Execute(ctx context.Context, opts *Options, commands ...string) ([]*procrunner.Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	cmds := normalize(commands)
	logger := ctxlog.Logger(ctx).With("runnableType", "Batch", "batchID", uuid.NewString())
	logger.Debug("starting batch", "commands", len(cmds), "concurrency", opts.Concurrency, "shell", opts.Process.Shell)

	results := make([]*procrunner.Result, len(cmds))
	errs := make([]error, len(cmds))
	procOpts := opts.clone().Process

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, command := range cmds {
		if gctx.Err() != nil {
			logger.Debug("skipping remaining commands after failure", "remaining", len(cmds)-i)
			break
		}

		g.Go(func() error {
			// a slot may have been freed by a failing command
			if gctx.Err() != nil {
				return nil
			}

			// ctx, not gctx: a failure elsewhere must not stop this command
			res, err := e.Runner.Run(ctx, command, procOpts)
			results[i] = res

			if err != nil {
				logger.Debug("command failed", "index", i, "command", command, "error", err)
				errs[i] = err

				return err //nolint:wrapcheck
			}

			return nil
		})
	}

	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &BatchError{Index: i, Command: cmds[i], Err: err}
		}
	}

	if err := ctx.Err(); err != nil && slices.Contains(results, nil) {
		return nil, err //nolint:wrapcheck
	}

	logger.Debug("batch finished")

	return results, nil
}

func normalize(commands []string) []string {
	out := make([]string, 0, len(commands))

	for _, c := range commands {
		if strings.TrimSpace(c) == "" {
			continue
		}

		out = append(out, c)
	}

	return out
}
