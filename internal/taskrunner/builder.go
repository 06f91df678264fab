// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskrunner

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"
)

// Handler is the function invoked when a task is selected.
type Handler func(ctx context.Context, args *Args) error

// TaskBuilder declares a task. It is passed to the registration callback of Program.Task.
type TaskBuilder struct {
	name        string
	description string
	usage       string
	aliases     []string
	flags       []cli.Flag
	defaults    map[string]any
	handler     Handler
}

func newTaskBuilder(name string) *TaskBuilder {
	return &TaskBuilder{
		name:     name,
		defaults: make(map[string]any),
	}
}

// Name returns the task name.
func (b *TaskBuilder) Name() string {
	return b.name
}

// Describe sets the long description shown in help.
func (b *TaskBuilder) Describe(description string) *TaskBuilder {
	b.description = description
	return b
}

// Usage sets the one line summary shown in the task list.
func (b *TaskBuilder) Usage(usage string) *TaskBuilder {
	b.usage = usage
	return b
}

// Alias adds alternative names for the task.
func (b *TaskBuilder) Alias(aliases ...string) *TaskBuilder {
	b.aliases = append(b.aliases, aliases...)
	return b
}

// Flag declares flags for the task.
func (b *TaskBuilder) Flag(flags ...cli.Flag) *TaskBuilder {
	b.flags = append(b.flags, flags...)
	return b
}

// Default sets a value present in Args.Flags unless the parser supplies one.
func (b *TaskBuilder) Default(key string, value any) *TaskBuilder {
	b.defaults[key] = value
	return b
}

// Action attaches the handler.
func (b *TaskBuilder) Action(h Handler) *TaskBuilder {
	b.handler = h
	return b
}

func (b *TaskBuilder) hasFlag(name string) bool {
	for _, f := range b.flags {
		if slices.Contains(f.Names(), name) {
			return true
		}
	}

	return false
}
