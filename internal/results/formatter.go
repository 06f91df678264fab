// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package results

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/shx/internal/color"
)

const header = "===== Results =====\n\n"

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	IncludeStdOut      bool // include stdout of shown commands
	IncludeStdErr      bool // include stderr of shown commands
	ShowSuccessDetails bool // show output of successful commands too
	ShowDuration       bool
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdErr: true,
	}
}

// Write writes all entries to w under a header.
func (e Entries) Write(w io.Writer, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for _, entry := range e {
		if err := writeEntry(w, entry, "", options); err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(w io.Writer, e *Entry, indent string, options *OutputOptions) error {
	var statusStr, labelPrefix string

	switch e.Status {
	case StatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	default:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	}

	label := e.Label
	if label == "" {
		label = "[unnamed]"
	}

	var line strings.Builder

	fmt.Fprintf(&line, "%s%s %s%s%s", indent, statusStr, labelPrefix, label, color.ControlString(color.Reset))

	if e.ExitCode != 0 {
		fmt.Fprintf(&line, " (exit code: %d)", e.ExitCode)
	}

	if options.ShowDuration && e.Duration > 0 {
		fmt.Fprintf(&line, " %s", color.Colorize(e.Duration.String(), color.Faint))
	}

	line.WriteString("\n")

	// the child that failed already explains the batch failure
	if e.Err != nil && !errors.Is(e.Err, ErrChildFailed) {
		fmt.Fprintf(&line,
			"%s  %s %s%s\n",
			indent,
			color.ColorizeNoReset("➜ Error:", color.FgRed),
			e.Err.Error(),
			color.ControlString(color.Reset),
		)
	}

	showDetails := (e.Status == StatusError || options.ShowSuccessDetails) && len(e.Children) == 0

	if showDetails && options.IncludeStdOut && e.Stdout != "" {
		fmt.Fprintf(&line, "%s  ➜ Output:\n", indent)
		line.WriteString(formatOutput(e.Stdout, indent+"     "))
	}

	if showDetails && options.IncludeStdErr && e.Stderr != "" {
		fmt.Fprintf(&line, "%s  %s\n", indent, color.Colorize("➜ Error Output:", color.FgHiRed))
		line.WriteString(formatOutput(e.Stderr, indent+"     "))
	}

	if _, err := io.WriteString(w, line.String()); err != nil {
		return err
	}

	for _, child := range e.Children {
		if err := writeEntry(w, child, indent+"  ", options); err != nil {
			return err
		}
	}

	return nil
}

// formatOutput indents every non-empty line of output.
func formatOutput(output, indent string) string {
	lines := strings.Split(output, "\n")

	sb := strings.Builder{}
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
