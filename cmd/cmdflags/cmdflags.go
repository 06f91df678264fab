// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdflags holds the flags shared by the tasks that run command batches,
// and the conversion of their values into executor and output options.
package cmdflags

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/shx/cmd/cmdstate"
	"github.com/matt-FFFFFF/shx/internal/batch"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
	"github.com/matt-FFFFFF/shx/internal/results"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	ConcurrencyFlag          = "concurrency"
	PreferLocalFlag          = "prefer-local"
	StdioFlag                = "stdio"
	EnvFlag                  = "env"
	TimeoutFlag              = "timeout"
	OutputStdOutFlag         = "output-stdout"
	NoOutputStdErrFlag       = "no-output-stderr"
	OutputSuccessDetailsFlag = "output-success-details"
	ShowDurationFlag         = "show-duration"
)

var (
	// ErrInvalidEnv is returned for an --env value that is not KEY=VALUE.
	ErrInvalidEnv = errors.New("env must be KEY=VALUE")
	// ErrBatchFailed is returned by Report when the batch failed.
	ErrBatchFailed = errors.New("batch failed")
)

// ExecFlags returns the flags controlling how commands run.
// A new slice is returned on every call because flags hold parse state.
func ExecFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    ConcurrencyFlag,
			Aliases: []string{"c"},
			Usage:   "Maximum number of commands running at once. 0 means unbounded, 1 runs commands in order",
			Sources: cli.EnvVars("SHX_CONCURRENCY"),
		},
		&cli.BoolFlag{
			Name:    PreferLocalFlag,
			Usage:   "Prefer executables installed in the project (bin, node_modules/.bin) over the system PATH",
			Value:   true,
			Sources: cli.EnvVars("SHX_PREFER_LOCAL"),
		},
		&cli.StringFlag{
			Name:    StdioFlag,
			Usage:   "How child output is connected: pipe (captured), inherit or ignore",
			Value:   procrunner.StdioPipe.String(),
			Sources: cli.EnvVars("SHX_STDIO"),
		},
		&cli.StringSliceFlag{
			Name:    EnvFlag,
			Aliases: []string{"e"},
			Usage:   "Set an environment variable for every command, as KEY=VALUE. May be repeated",
		},
		&cli.DurationFlag{
			Name:    TimeoutFlag,
			Aliases: []string{"t"},
			Usage:   "Stop each command after this long. 0 disables the timeout",
			Sources: cli.EnvVars("SHX_TIMEOUT"),
		},
	}
}

// OutputFlags returns the flags controlling the results report.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    OutputStdOutFlag,
			Aliases: []string{"stdout"},
			Usage:   "Include stdout output in the results",
		},
		&cli.BoolFlag{
			Name:    NoOutputStdErrFlag,
			Aliases: []string{"no-stderr"},
			Usage:   "Exclude stderr output in the results",
		},
		&cli.BoolFlag{
			Name:    OutputSuccessDetailsFlag,
			Aliases: []string{"success"},
			Usage:   "Include successful results in the output",
		},
		&cli.BoolFlag{
			Name:  ShowDurationFlag,
			Usage: "Show how long each command took",
		},
	}
}

// Options builds executor options from the parsed flags.
func Options(ctx context.Context, args *taskrunner.Args) (*batch.Options, error) {
	opts := batch.DefaultOptions()
	opts.Concurrency = args.Int(ConcurrencyFlag)
	opts.Process.Timeout = args.Duration(TimeoutFlag)

	if args.Has(PreferLocalFlag) {
		opts.Process.PreferLocal = args.Bool(PreferLocalFlag)
	}

	if s := args.String(StdioFlag); s != "" {
		stdio, err := procrunner.ParseStdio(s)
		if err != nil {
			return nil, err
		}

		opts.Process.Stdio = stdio
	}

	env, err := ParseEnv(args.StringSlice(EnvFlag))
	if err != nil {
		return nil, err
	}

	opts.Process.Env = env
	opts.Process.Cwd = args.Cwd()

	sp, err := cmdstate.SearchPath(ctx, opts.Process.Cwd)
	if err != nil {
		return nil, err
	}

	opts.Process.SearchPath = sp

	return opts, nil
}

// ParseEnv converts KEY=VALUE pairs into a map. It returns nil for no pairs.
func ParseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	env := make(map[string]string, len(pairs))

	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEnv, p)
		}

		env[k] = v
	}

	return env, nil
}

// OutputOptions builds report options from the parsed flags.
func OutputOptions(args *taskrunner.Args) *results.OutputOptions {
	opts := results.DefaultOutputOptions()
	opts.IncludeStdOut = args.Bool(OutputStdOutFlag)
	opts.IncludeStdErr = !args.Bool(NoOutputStdErrFlag)
	opts.ShowSuccessDetails = args.Bool(OutputSuccessDetailsFlag)
	opts.ShowDuration = args.Bool(ShowDurationFlag)

	return opts
}

// Report writes entries to w and returns ErrBatchFailed, joined with cause, if any failed.
func Report(ctx context.Context, w io.Writer, entries results.Entries, args *taskrunner.Args, cause error) error {
	if err := entries.Write(w, OutputOptions(args)); err != nil {
		ctxlog.Error(ctx, "failed to write results", "error", err)
		return errors.Join(err, cause)
	}

	if entries.HasError() {
		return errors.Join(ErrBatchFailed, cause)
	}

	return nil
}
