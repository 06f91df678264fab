// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package testconfig registers the test-config task.
package testconfig

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/shx/internal/ctxlog"
	"github.com/matt-FFFFFF/shx/internal/taskrunner"
	testcfg "github.com/matt-FFFFFF/shx/internal/testconfig"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	// Task is the name of the test-config task.
	Task = "test-config"

	nameFlag   = "name"
	layoutFlag = "layout"
	targetFlag = "target"
	formatFlag = "format"
	outFlag    = "out"
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Register adds the test-config task to p.
func Register(p *taskrunner.Program) {
	p.Task(Task, func(b *taskrunner.TaskBuilder) {
		b.Usage("Print a test runner configuration").
			Describe(`Print the configuration consumed by the JavaScript test runner.

The test glob depends on the layout: single packages keep tests under src/, mono
repositories under packages/*/src/. Build output for the target is ignored.`).
			Flag(
				&cli.StringFlag{
					Name:  nameFlag,
					Usage: "Display name. Defaults to the base name of --cwd",
				},
				&cli.StringFlag{
					Name:  layoutFlag,
					Usage: "Repository layout: single or mono",
					Value: string(testcfg.LayoutSingle),
				},
				&cli.StringFlag{
					Name:  targetFlag,
					Usage: "Build target: module or common",
					Value: string(testcfg.TargetModule),
				},
				&cli.StringFlag{
					Name:  formatFlag,
					Usage: "Output format: json or yaml",
					Value: string(testcfg.FormatJSON),
				},
				&cli.StringFlag{
					Name:      outFlag,
					Aliases:   []string{"o"},
					Usage:     "Write to this file instead of stdout",
					TakesFile: true,
				},
			).
			Action(func(ctx context.Context, args *taskrunner.Args) error {
				return action(ctx, p, args)
			})
	})
}

func action(ctx context.Context, p *taskrunner.Program, args *taskrunner.Args) error {
	name := args.String(nameFlag)
	if name == "" {
		name = filepath.Base(args.Cwd())
	}

	cfg, err := testcfg.New(testcfg.Options{
		Name:    name,
		Layout:  testcfg.Layout(args.String(layoutFlag)),
		Target:  testcfg.Target(args.String(targetFlag)),
		RootDir: args.Cwd(),
	})
	if err != nil {
		return err
	}

	format := testcfg.Format(args.String(formatFlag))

	out := args.String(outFlag)
	if out == "" {
		return cfg.Write(p.Writer, format)
	}

	buf := new(bytes.Buffer)
	if err := cfg.Write(buf, format); err != nil {
		return err
	}

	if err := afero.WriteFile(FsFactory(), out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	ctxlog.Info(ctx, "test config written", "file", out)

	return nil
}
