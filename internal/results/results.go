// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package results renders the outcome of command batches as indented, coloured text.
package results

import (
	"errors"
	"time"

	"github.com/matt-FFFFFF/shx/internal/batch"
	"github.com/matt-FFFFFF/shx/internal/procrunner"
)

// Status is the outcome of an entry.
type Status int

const (
	// StatusSuccess means the command ran and exited zero.
	StatusSuccess Status = iota
	// StatusError means the command or the batch failed.
	StatusError
)

// ErrChildFailed marks a batch entry whose failure is reported by a child.
var ErrChildFailed = errors.New("a command in the batch failed")

// Entry is one line of output with optional details and children.
type Entry struct {
	Label    string
	Status   Status
	ExitCode int
	Err      error
	Stdout   string
	Stderr   string
	Duration time.Duration
	Children Entries
}

// Entries is an ordered list of entries.
type Entries []*Entry

// HasError reports whether any entry, or any of its children, failed.
func (e Entries) HasError() bool {
	for _, entry := range e {
		if entry.Status == StatusError || entry.Children.HasError() {
			return true
		}
	}

	return false
}

// FromBatch builds the entry for one batch from the values returned by batch.Executor.
// On failure only the failing command is listed.
func FromBatch(label string, res []*procrunner.Result, err error) *Entry {
	parent := &Entry{Label: label}

	if err == nil {
		parent.Children = make(Entries, 0, len(res))
		for _, r := range res {
			parent.Children = append(parent.Children, fromResult(r))
			parent.Duration += r.Duration
		}

		return parent
	}

	parent.Status = StatusError
	parent.ExitCode = -1

	var (
		batchErr *batch.BatchError
		execErr  *procrunner.ExecError
	)

	if !errors.As(err, &batchErr) || !errors.As(err, &execErr) {
		parent.Err = err
		return parent
	}

	child := fromResult(&execErr.Result)
	child.Status = StatusError
	child.Err = errors.New(execErr.Message)

	parent.Err = ErrChildFailed
	parent.Children = Entries{child}

	return parent
}

func fromResult(r *procrunner.Result) *Entry {
	return &Entry{
		Label:    r.Command,
		ExitCode: r.ExitCode,
		Stdout:   r.Stdout,
		Stderr:   r.Stderr,
		Duration: r.Duration,
	}
}
