// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batchfile

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/shx/internal/batch"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
)

var (
	// ErrInvalidFile is returned when a definition fails validation.
	ErrInvalidFile = errors.New("invalid batch file")
	// ErrNoCommands is returned when a definition has no non-blank commands.
	ErrNoCommands = errors.New("no commands specified")
	// ErrNegativeConcurrency is returned for a concurrency below zero.
	ErrNegativeConcurrency = errors.New("concurrency must not be negative")
	// ErrInvalidTimeout is returned when timeout is not a non-negative duration.
	ErrInvalidTimeout = errors.New("timeout must be a non-negative duration")
	// ErrInvalidEnv is returned for an environment variable name that cannot be exported.
	ErrInvalidEnv = errors.New("invalid environment variable name")
)

// File is a batch definition.
type File struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" hcl:"name,optional"`
	Commands    []string          `json:"commands" yaml:"commands" toml:"commands" hcl:"commands"`
	Concurrency int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty" toml:"concurrency,omitempty" hcl:"concurrency,optional"`
	Shell       bool              `json:"shell,omitempty" yaml:"shell,omitempty" toml:"shell,omitempty" hcl:"shell,optional"`
	PreferLocal *bool             `json:"prefer_local,omitempty" yaml:"prefer_local,omitempty" toml:"prefer_local,omitempty" hcl:"prefer_local,optional"`
	Stdio       string            `json:"stdio,omitempty" yaml:"stdio,omitempty" toml:"stdio,omitempty" hcl:"stdio,optional"`
	Cwd         string            `json:"cwd,omitempty" yaml:"cwd,omitempty" toml:"cwd,omitempty" hcl:"cwd,optional"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty" hcl:"env,optional"`
	Timeout     string            `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty" hcl:"timeout,optional"`

	// dir is the directory relative cwd values are resolved against.
	dir string
}

// Validate reports every problem with f, not just the first.
func (f *File) Validate() error {
	var result error

	if len(f.commands()) == 0 {
		result = multierror.Append(result, ErrNoCommands)
	}

	if f.Concurrency < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: %d", ErrNegativeConcurrency, f.Concurrency))
	}

	if f.Stdio != "" {
		if _, err := procrunner.ParseStdio(f.Stdio); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if _, err := f.timeout(); err != nil {
		result = multierror.Append(result, err)
	}

	for k := range f.Env {
		if k == "" || strings.ContainsAny(k, "= \t\n") {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrInvalidEnv, k))
		}
	}

	if result != nil {
		return errors.Join(ErrInvalidFile, result)
	}

	return nil
}

// Batch converts f into the commands and executor options it describes.
// Fields left unset keep the values of batch.DefaultOptions.
func (f *File) Batch() ([]string, *batch.Options, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	opts := batch.DefaultOptions()
	opts.Concurrency = f.Concurrency
	opts.Process.Shell = f.Shell

	if f.PreferLocal != nil {
		opts.Process.PreferLocal = *f.PreferLocal
	}

	if f.Stdio != "" {
		opts.Process.Stdio, _ = procrunner.ParseStdio(f.Stdio)
	}

	opts.Process.Timeout, _ = f.timeout()
	opts.Process.Cwd = f.cwd()

	if len(f.Env) > 0 {
		opts.Process.Env = maps.Clone(f.Env)
	}

	return f.commands(), opts, nil
}

func (f *File) commands() []string {
	cmds := make([]string, 0, len(f.Commands))

	for _, c := range f.Commands {
		if strings.TrimSpace(c) != "" {
			cmds = append(cmds, c)
		}
	}

	return cmds
}

func (f *File) timeout() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(f.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, f.Timeout)
	}

	return d, nil
}

func (f *File) cwd() string {
	switch {
	case f.Cwd == "":
		return f.dir
	case filepath.IsAbs(f.Cwd), f.dir == "":
		return f.Cwd
	default:
		return filepath.Join(f.dir, f.Cwd)
	}
}
