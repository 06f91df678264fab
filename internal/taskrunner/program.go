// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskrunner

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	// DefaultTaskName is the name of the task registered with an empty name.
	// It runs when argv selects no other task.
	DefaultTaskName = "default"
	// CwdFlag is the flag added to every task with an action.
	CwdFlag = "cwd"
)

// Program is a set of tasks dispatched from a single command line.
type Program struct {
	Name        string
	Version     string
	Description string
	Writer      io.Writer
	ErrWriter   io.Writer

	cwd   string
	tasks map[string]*TaskBuilder
	order []string
}

// New returns an empty Program. The working directory is captured here and used as the
// default of every --cwd flag.
func New(name, version string) *Program {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Program{
		Name:      name,
		Version:   version,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		cwd:       cwd,
		tasks:     make(map[string]*TaskBuilder),
	}
}

// Task registers the task name, or the default task when name is empty, and calls fn with
// its builder. Registering an existing name passes the same builder again.
func (p *Program) Task(name string, fn func(*TaskBuilder)) *Program {
	if name == "" {
		name = DefaultTaskName
	}

	b, ok := p.tasks[name]
	if !ok {
		b = newTaskBuilder(name)
		p.tasks[name] = b
		p.order = append(p.order, name)
	}

	if fn != nil {
		fn(b)
	}

	return p
}

// Tasks returns the registered task names in registration order.
func (p *Program) Tasks() []string {
	return slices.Clone(p.order)
}

// Run parses argv, which includes the program name like os.Args, and runs the selected task.
// When nothing matches and there is no default task the parser prints its help and Run
// returns nil. A failing handler is reported as a *TaskError.
func (p *Program) Run(ctx context.Context, argv []string) error {
	return p.command(argv).Run(ctx, argv)
}

func (p *Program) command(argv []string) *cli.Command {
	var raw []string
	if len(argv) > 1 {
		raw = slices.Clone(argv[1:])
	}

	root := &cli.Command{
		Name:        p.Name,
		Version:     p.Version,
		Description: p.Description,
		Writer:      p.Writer,
		ErrWriter:   p.ErrWriter,
		// errors are returned to the caller which decides the exit code
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	for _, name := range p.order {
		b := p.tasks[name]
		if name == DefaultTaskName {
			root.Usage = b.usage
			root.Flags = p.flags(b)
			root.Action = p.action(b, raw)

			continue
		}

		root.Commands = append(root.Commands, &cli.Command{
			Name:        b.name,
			Aliases:     b.aliases,
			Usage:       b.usage,
			Description: b.description,
			Flags:       p.flags(b),
			Action:      p.action(b, raw),
		})
	}

	return root
}

func (p *Program) flags(b *TaskBuilder) []cli.Flag {
	flags := slices.Clone(b.flags)
	if b.handler != nil && !b.hasFlag(CwdFlag) {
		flags = append(flags, &cli.StringFlag{
			Name:      CwdFlag,
			Usage:     "Working directory for the task",
			Value:     p.cwd,
			TakesFile: true,
		})
	}

	return flags
}

func (p *Program) action(b *TaskBuilder, raw []string) cli.ActionFunc {
	if b.handler == nil {
		return nil
	}

	return func(ctx context.Context, cmd *cli.Command) error {
		args := fallbackArgs(b.name, b.defaults, raw)
		if cmd.Args().Present() {
			args.Positional = cmd.Args().Slice()
		}

		for _, f := range cmd.Flags {
			names := f.Names()
			if len(names) == 0 {
				continue
			}

			name := names[0]
			if _, hasDefault := b.defaults[name]; hasDefault && !cmd.IsSet(name) {
				continue
			}

			args.Flags[name] = cmd.Value(name)
		}

		ctx = ctxlog.With(ctx, "task", b.name)
		ctxlog.Debug(ctx, "running task", "positional", args.Positional)

		if err := b.handler(ctx, args); err != nil {
			return newTaskError(args, err)
		}

		return nil
	}
}
