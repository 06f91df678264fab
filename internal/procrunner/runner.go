// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	gocmd "github.com/go-cmd/cmd"
	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/localpath"
)

const signalPrefix = "signal: "

// Runner runs one command to completion.
type Runner interface {
	Run(ctx context.Context, command string, opts Options) (*Result, error)
}

var _ Runner = (*CmdRunner)(nil)

// CmdRunner is the Runner backed by go-cmd.
type CmdRunner struct {
	environ func() []string
}

// New returns a CmdRunner that starts children from the current process environment.
func New() *CmdRunner {
	return &CmdRunner{environ: os.Environ}
}

// Run spawns command and waits for it.
//
// The returned Result is non-nil whenever the command was attempted. If the command
// failed, the error is an *ExecError holding the same data.
// Cancelling ctx stops the process group.
func (r *CmdRunner) Run(ctx context.Context, command string, opts Options) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}

	logger := ctxlog.Logger(ctx).With("runner", "CmdRunner", "command", command)

	sp := opts.SearchPath
	if sp == nil {
		resolved, err := localpath.Resolve(cwdOrDot(opts.Cwd), os.Getenv("PATH"))
		if err != nil {
			return r.startFailure(command, err)
		}

		sp = resolved
	}

	name, args, err := argv(command, opts, sp)
	if err != nil {
		return r.startFailure(command, err)
	}

	logger.Debug("command info", "path", name, "args", args, "cwd", opts.Cwd, "shell", opts.Shell)

	c := gocmd.NewCmdOptions(cmdOptions(opts), name, args...)
	c.Dir = opts.Cwd
	c.Env = r.env(opts, sp)

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	var streamed <-chan struct{}
	if opts.Stdio == StdioInherit {
		streamed = forward(c, writerOr(opts.Stdout, os.Stdout), writerOr(opts.Stderr, os.Stderr))
	}

	statusCh := c.Start()

	var (
		status  gocmd.Status
		stopped bool
	)

	select {
	case status = <-statusCh:
	case <-runCtx.Done():
		logger.Info("context done, stopping process")

		if err := c.Stop(); err != nil {
			logger.Debug("stop returned error", "error", err)
		}

		stopped = true
		status = <-statusCh
	}

	if streamed != nil {
		<-streamed
	}

	res := &Result{
		Command:  command,
		ExitCode: status.Exit,
		Stdout:   strings.Join(status.Stdout, "\n"),
		Stderr:   strings.Join(status.Stderr, "\n"),
	}

	if status.StopTs > status.StartTs {
		res.Duration = time.Duration(status.StopTs - status.StartTs)
	}

	logger.Debug("process finished", "pid", status.PID, "exitCode", res.ExitCode, "duration", res.Duration)

	if status.PID == 0 && status.Error != nil {
		res.ExitCode = -1
		return res, newExecError(res, errors.Join(ErrCouldNotStart, status.Error), status.Error, 0)
	}

	if status.Error != nil && strings.HasPrefix(status.Error.Error(), signalPrefix) {
		res.Killed = true
		res.Signal = strings.TrimPrefix(status.Error.Error(), signalPrefix)
	}

	if stopped && !status.Complete {
		res.Killed = true
		if res.Signal == "" {
			res.Signal = "terminated"
		}

		res.TimedOut = opts.Timeout > 0 && ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded)
	}

	if res.Killed && res.ExitCode == 0 {
		res.ExitCode = -1
	}

	switch {
	case res.TimedOut:
		return res, newExecError(res, ErrTimeout, nil, opts.Timeout)
	case res.Killed:
		return res, newExecError(res, errors.Join(ErrKilled, ctx.Err()), nil, 0)
	case res.ExitCode != 0:
		return res, newExecError(res, ErrNonZeroExit, nil, 0)
	case status.Error != nil:
		res.ExitCode = -1
		return res, newExecError(res, status.Error, nil, 0)
	}

	return res, nil
}

func (r *CmdRunner) startFailure(command string, err error) (*Result, error) {
	res := &Result{Command: command, ExitCode: -1}

	return res, newExecError(res, errors.Join(ErrCouldNotStart, err), err, 0)
}

// env layers the search path and then opts.Env over the parent environment.
// Later entries win when the child environment is deduplicated.
func (r *CmdRunner) env(opts Options, sp *localpath.SearchPath) []string {
	env := slices.Clone(r.environ())
	env = append(env, "PATH="+sp.Env(opts.PreferLocal))

	for _, k := range slices.Sorted(maps.Keys(opts.Env)) {
		env = append(env, fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	return env
}

func argv(command string, opts Options, sp *localpath.SearchPath) (string, []string, error) {
	if opts.Shell {
		name, args := shellArgv(command)
		return name, args, nil
	}

	fields := strings.Fields(command)

	path, err := sp.LookPath(fields[0], opts.PreferLocal)
	if err != nil {
		return "", nil, err //nolint:wrapcheck
	}

	return path, fields[1:], nil
}

func cmdOptions(opts Options) gocmd.Options {
	switch opts.Stdio {
	case StdioInherit:
		return gocmd.Options{
			Streaming: true,
			BeforeExec: []func(cmd *exec.Cmd){
				func(cmd *exec.Cmd) { cmd.Stdin = os.Stdin },
			},
		}
	case StdioIgnore:
		return gocmd.Options{}
	default:
		return gocmd.Options{Buffered: true}
	}
}

// forward copies streamed lines to the given writers until the command is done.
func forward(c *gocmd.Cmd, stdout, stderr io.Writer) <-chan struct{} {
	done := make(chan struct{})
	outCh, errCh := c.Stdout, c.Stderr

	go func() {
		defer close(done)

		for outCh != nil || errCh != nil {
			select {
			case line, open := <-outCh:
				if !open {
					outCh = nil
					continue
				}

				fmt.Fprintln(stdout, line) //nolint:errcheck
			case line, open := <-errCh:
				if !open {
					errCh = nil
					continue
				}

				fmt.Fprintln(stderr, line) //nolint:errcheck
			case <-c.Done():
				drain(outCh, stdout)
				drain(errCh, stderr)

				return
			}
		}
	}()

	return done
}

func drain(ch <-chan string, w io.Writer) {
	for {
		select {
		case line, open := <-ch:
			if !open {
				return
			}

			fmt.Fprintln(w, line) //nolint:errcheck
		default:
			return
		}
	}
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}

	return w
}

func cwdOrDot(cwd string) string {
	if cwd == "" {
		return "."
	}

	return cwd
}
