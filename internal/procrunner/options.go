// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrunner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/shx/internal/localpath"
)

// ErrUnknownStdio is returned when a stdio mode name is not recognised.
var ErrUnknownStdio = errors.New("unknown stdio mode")

// Stdio selects how the child's output streams are connected.
type Stdio int

const (
	// StdioPipe captures stdout and stderr into the Result.
	StdioPipe Stdio = iota
	// StdioInherit streams output to the parent's writers and connects stdin.
	StdioInherit
	// StdioIgnore discards all output.
	StdioIgnore
)

const (
	stdioPipeStr    = "pipe"
	stdioInheritStr = "inherit"
	stdioIgnoreStr  = "ignore"
)

// String returns the name of the mode.
func (s Stdio) String() string {
	switch s {
	case StdioPipe:
		return stdioPipeStr
	case StdioInherit:
		return stdioInheritStr
	case StdioIgnore:
		return stdioIgnoreStr
	default:
		return "unknown"
	}
}

// ParseStdio converts a mode name into a Stdio. The empty string means StdioPipe.
func ParseStdio(s string) (Stdio, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", stdioPipeStr:
		return StdioPipe, nil
	case stdioInheritStr:
		return StdioInherit, nil
	case stdioIgnoreStr:
		return StdioIgnore, nil
	default:
		return StdioPipe, fmt.Errorf("%w: %q", ErrUnknownStdio, s)
	}
}

// Options controls how one command is spawned.
type Options struct {
	Shell       bool                  // Run through the system shell instead of directly.
	PreferLocal bool                  // Search project-local tool directories first.
	Stdio       Stdio                 // Output stream handling.
	Env         map[string]string     // Added on top of the parent environment.
	Cwd         string                // Working directory, defaults to the current one.
	Timeout     time.Duration         `validate:"gte=0"` // Zero means no timeout.
	SearchPath  *localpath.SearchPath // Pre-resolved search path, resolved from Cwd when nil.
	Stdout      io.Writer             // Inherit-mode stdout, defaults to os.Stdout.
	Stderr      io.Writer             // Inherit-mode stderr, defaults to os.Stderr.
}
